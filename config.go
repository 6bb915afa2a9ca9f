package lattice

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// OpenPolicy decides what happens when an interface is opened for a viewer
// who already has one open.
type OpenPolicy string

const (
	// OpenReplace closes the viewer's open sessions with CloseReplaced, then
	// opens the new one.
	OpenReplace OpenPolicy = "replace"
	// OpenReject refuses the open with ErrAlreadyOpen.
	OpenReject OpenPolicy = "reject"
	// OpenStack opens the new session on top of the current one, which becomes
	// its parent and resumes when the child closes.
	OpenStack OpenPolicy = "stack"
)

// Valid reports whether p is a known policy.
func (p OpenPolicy) Valid() bool {
	switch p {
	case OpenReplace, OpenReject, OpenStack:
		return true
	}
	return false
}

// DefaultTracerName names the engine's tracer when none is configured.
const DefaultTracerName = "github.com/phanxgames/lattice"

// Config holds engine settings.
type Config struct {
	OpenPolicy OpenPolicy `env:"LATTICE_OPEN_POLICY" envDefault:"replace"`
	// Debug logs per-pass statistics.
	Debug bool `env:"LATTICE_DEBUG" envDefault:"false"`
	// CancelOnPanic is the CancelHostAction reported for a click handler that
	// panics.
	CancelOnPanic bool   `env:"LATTICE_CANCEL_ON_PANIC" envDefault:"true"`
	TracerName    string `env:"LATTICE_TRACER_NAME" envDefault:"github.com/phanxgames/lattice"`
}

// DefaultConfig returns the settings used when no environment is consulted.
func DefaultConfig() Config {
	return Config{
		OpenPolicy:    OpenReplace,
		CancelOnPanic: true,
		TracerName:    DefaultTracerName,
	}
}

// LoadConfig reads Config from LATTICE_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if !cfg.OpenPolicy.Valid() {
		return Config{}, fmt.Errorf("parse env: unknown open policy %q", cfg.OpenPolicy)
	}
	return cfg, nil
}
