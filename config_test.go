package lattice

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("LATTICE_OPEN_POLICY", "stack")
	t.Setenv("LATTICE_DEBUG", "true")
	t.Setenv("LATTICE_CANCEL_ON_PANIC", "false")
	t.Setenv("LATTICE_TRACER_NAME", "lattice-test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{OpenPolicy: OpenStack, Debug: true, CancelOnPanic: false, TracerName: "lattice-test"}
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown policy", "LATTICE_OPEN_POLICY", "queue"},
		{"bad bool", "LATTICE_DEBUG", "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			if err == nil || !strings.HasPrefix(err.Error(), "parse env:") {
				t.Errorf("err = %v, want parse env error", err)
			}
		})
	}
}

func TestNewEngineFixesInvalidPolicy(t *testing.T) {
	e := NewEngine(&fakeHost{}, WithConfig(Config{OpenPolicy: "bogus"}), WithLogger(quietLogger()))
	if e.Config().OpenPolicy != OpenReplace {
		t.Errorf("policy = %q, want replace", e.Config().OpenPolicy)
	}
}

func TestDebugLogsPassStats(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Debug = true
	e := NewEngine(&fakeHost{}, WithConfig(cfg), WithLogger(log.New(&buf, "", 0)))

	p := NewProperty(0)
	iface := BuildChest(1).
		AddTransform(func(v *View) error { p.Get(); return v.Set(0, 0, el("same")) }, WithProperties(p)).
		Build()
	if _, err := e.Open(bg, iface, "alice", NewArguments()); err != nil {
		t.Fatal(err)
	}
	p.Set(1)
	e.Flush(bg)

	out := buf.String()
	for _, want := range []string{"full pass", "partial pass", "cells changed: 1", "without changing a cell"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
}

func TestDebugQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(&fakeHost{}, WithLogger(log.New(&buf, "", 0)))
	if _, err := e.Open(bg, BuildChest(1).AddTransform(writer(0, 0, 1)).Build(), "alice", NewArguments()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}
