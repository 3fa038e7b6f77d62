// Package telemetry records per-tick traces of a simulated level as CSV.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// Sample is the state of the world after one tick.
type Sample struct {
	Tick       int     `csv:"tick"`
	NowMs      int64   `csv:"now_ms"`
	DeltaMs    float64 `csv:"delta_ms"`
	State      string  `csv:"state"`
	Score      int     `csv:"score"`
	ElapsedMs  int64   `csv:"elapsed_ms"`
	Entities   int     `csv:"entities"`
	Alive      int     `csv:"alive"`
	PlayerX    float64 `csv:"player_x"`
	PlayerY    float64 `csv:"player_y"`
	Speed      float64 `csv:"speed"`
	Jumping    bool    `csv:"jumping"`
	Falling    bool    `csv:"falling"`
	OnGround   bool    `csv:"on_ground"`
	CollisionX string  `csv:"collision_x"`
	CollisionY string  `csv:"collision_y"`
}

// Summary describes a finished simulation.
type Summary struct {
	Level     string  `csv:"level"`
	Ticks     int     `csv:"ticks"`
	State     string  `csv:"state"`
	Score     int     `csv:"score"`
	TimeMs    int64   `csv:"time_ms"`
	Completed bool    `csv:"completed"`
	MeanDelta float64 `csv:"mean_delta_ms"`
}

// Capture builds the sample for tick from the current world.
func Capture(tick int, c physics.Clock, w *world.World) Sample {
	s := Sample{
		Tick:      tick,
		NowMs:     c.Now,
		DeltaMs:   c.Delta * 1000,
		State:     w.State().String(),
		Score:     w.Score(),
		ElapsedMs: w.Elapsed(),
	}

	for _, e := range w.Entities() {
		s.Entities++
		if e.IsAlive() {
			s.Alive++
		}
	}

	if p := w.Player(); p != nil {
		s.PlayerX = p.Bounds.X
		s.PlayerY = p.Bounds.Y
		s.Speed = p.Agility.Velocity.Sum()
		s.Jumping = p.Agility.IsJumping()
		s.Falling = p.Agility.IsFalling()
		s.OnGround = p.IsOnGround()
		s.CollisionX = sideName(p.LastCollision.X)
		s.CollisionY = sideName(p.LastCollision.Y)
	}
	return s
}

func sideName(s entity.Side) string {
	if s == entity.SideNone {
		return ""
	}
	return s.String()
}

// Writer handles trace output with CSV logging.
type Writer struct {
	dir         string
	traceFile   *os.File
	summaryFile *os.File

	// Track if headers have been written
	traceHeaderWritten   bool
	summaryHeaderWritten bool
}

// NewWriter creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}

	w := &Writer{dir: dir}

	f, err := os.Create(filepath.Join(dir, "trace.csv"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating trace.csv: %w", err)
	}
	w.traceFile = f

	f, err = os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		w.traceFile.Close()
		return nil, fmt.Errorf("telemetry: creating summary.csv: %w", err)
	}
	w.summaryFile = f

	return w, nil
}

// WriteSample appends a sample to trace.csv.
func (w *Writer) WriteSample(s Sample) error {
	if w == nil {
		return nil
	}
	if err := writeRecords(w.traceFile, []Sample{s}, &w.traceHeaderWritten); err != nil {
		return fmt.Errorf("telemetry: writing trace: %w", err)
	}
	return nil
}

// WriteSummary appends a summary to summary.csv.
func (w *Writer) WriteSummary(s Summary) error {
	if w == nil {
		return nil
	}
	if err := writeRecords(w.summaryFile, []Summary{s}, &w.summaryHeaderWritten); err != nil {
		return fmt.Errorf("telemetry: writing summary: %w", err)
	}
	return nil
}

// writeRecords writes the header with the first batch only.
func writeRecords(f *os.File, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// Close closes all output files.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{w.traceFile, w.summaryFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
