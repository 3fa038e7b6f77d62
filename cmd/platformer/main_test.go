package main

import (
	"testing"
)

func TestRootFlags(t *testing.T) {
	pf := rootCmd.PersistentFlags()

	for _, name := range []string{"fps", "db", "config", "difficulty", "levels", "log-level", "log-file"} {
		if pf.Lookup(name) == nil {
			t.Errorf("missing --%s", name)
		}
	}
	// the simulation is deterministic, there is nothing to seed
	if pf.Lookup("seed") != nil {
		t.Error("unexpected --seed flag")
	}
}

func TestSubcommands(t *testing.T) {
	want := map[string]bool{
		"list": true, "play": true, "menu": true, "serve": true,
		"scores": true, "simulate": true, "kinds": true,
	}
	for _, c := range rootCmd.Commands() {
		delete(want, c.Name())
	}
	for name := range want {
		t.Errorf("missing %q command", name)
	}
}

func TestPort(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23234", "23234"},
		{"localhost:2222", "2222"},
		{"[::1]:22", "22"},
		{"nonsense", "nonsense"},
	}
	for _, tt := range tests {
		if got := port(tt.addr); got != tt.want {
			t.Errorf("port(%q) = %q, expected %q", tt.addr, got, tt.want)
		}
	}
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00.000"},
		{1234, "0:01.234"},
		{61005, "1:01.005"},
	}
	for _, tt := range tests {
		if got := formatMs(tt.ms); got != tt.want {
			t.Errorf("formatMs(%d) = %q, expected %q", tt.ms, got, tt.want)
		}
	}
}
