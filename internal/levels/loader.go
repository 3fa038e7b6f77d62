package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the levels shipped with the binary, sorted by id.
func Builtin() ([]*Level, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("levels: builtin: %w", err)
	}

	var out []*Level
	for _, entry := range entries {
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("levels: builtin %s: %w", entry.Name(), err)
		}
		l, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("levels: builtin %s: %w", entry.Name(), err)
		}
		out = append(out, l)
	}

	sortByID(out)
	return out, nil
}

// Get returns the built-in level with the given id, or loads id as a file
// path when it names an existing YAML file.
func Get(id string) (*Level, error) {
	if isLevelFile(id) {
		if _, err := os.Stat(id); err == nil {
			return LoadFile(id)
		}
	}

	all, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, l := range all {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("levels: level not found: %s", id)
}

// LoadDir recursively loads every level file under root. Invalid files are
// skipped. The result is sorted by id.
func LoadDir(root string) ([]*Level, error) {
	var out []*Level

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLevelFile(path) {
			return nil
		}
		l, err := LoadFile(path)
		if err != nil {
			return nil
		}
		out = append(out, l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", root, err)
	}

	sortByID(out)
	return out, nil
}

func isLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func sortByID(ls []*Level) {
	sort.Slice(ls, func(i, j int) bool { return ls[i].ID < ls[j].ID })
}
