package memhost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/phanxgames/lattice"
)

// Step is a single action in a script.
type Step struct {
	Action    string         `json:"action"`
	Viewer    string         `json:"viewer,omitempty"`
	Interface string         `json:"interface,omitempty"`
	Title     string         `json:"title,omitempty"`
	Args      map[string]any `json:"args,omitempty"`
	X         int            `json:"x,omitempty"`
	Y         int            `json:"y,omitempty"`
	Click     string         `json:"click,omitempty"`
	Ticks     int            `json:"ticks,omitempty"`
	Cause     string         `json:"cause,omitempty"`
	Label     string         `json:"label,omitempty"`
}

// Script is the top-level JSON structure for a script.
type Script struct {
	Steps []Step `json:"steps"`
}

// LoadScript parses a JSON script.
func LoadScript(data []byte) (*Script, error) {
	var script Script
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "open", "click", "tick", "flush", "close", "hostclose", "snapshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &script, nil
}

// Snapshot is a labelled dump taken by a "snapshot" step.
type Snapshot struct {
	Label  string
	Viewer lattice.ViewerID
	Text   string
}

// Runner plays scripts against an engine backed by a memhost Host.
//
// Steps:
//
//	open      opens Interfaces[interface] for viewer, with args and title
//	click     clicks (x, y) on the viewer's surface; click defaults to "left"
//	tick      advances the host tick and calls Engine.Tick, ticks times (1)
//	flush     calls Engine.Flush
//	close     closes the viewer's sessions with Engine.Close
//	hostclose closes the viewer's surface from the host; cause "host" or
//	          "disconnect"
//	snapshot  dumps the viewer's surface under label
type Runner struct {
	Engine     *lattice.Engine
	Host       *Host
	Interfaces map[string]*lattice.Interface
	// Arguments converts a step's args. nil uses lattice.ArgumentsFromMap.
	Arguments func(raw map[string]any) (lattice.Arguments, error)
	// Labeler formats payloads in snapshots. nil uses DefaultLabeler.
	Labeler Labeler
	// Out, when set, receives every snapshot as it is taken.
	Out io.Writer
	// Dir, when set, receives every snapshot as a file.
	Dir string

	snapshots []Snapshot
}

// Snapshots returns the snapshots taken so far.
func (r *Runner) Snapshots() []Snapshot {
	out := make([]Snapshot, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

// Run executes every step in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, script *Script) error {
	for i, st := range script.Steps {
		if err := r.step(ctx, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
	}
	return nil
}

func (r *Runner) step(ctx context.Context, st Step) error {
	viewer := lattice.ViewerID(st.Viewer)
	switch st.Action {
	case "open":
		iface, ok := r.Interfaces[st.Interface]
		if !ok {
			return fmt.Errorf("unknown interface %q", st.Interface)
		}
		var opts []lattice.OpenOption
		if st.Title != "" {
			opts = append(opts, lattice.WithTitle(st.Title))
		}
		args := lattice.ArgumentsFromMap(st.Args)
		if r.Arguments != nil {
			var err error
			if args, err = r.Arguments(st.Args); err != nil {
				return err
			}
		}
		_, err := r.Engine.Open(ctx, iface, viewer, args, opts...)
		return err
	case "click":
		click := lattice.ClickLeft
		if st.Click != "" {
			c, ok := lattice.ParseClickType(st.Click)
			if !ok {
				return fmt.Errorf("unknown click type %q", st.Click)
			}
			click = c
		}
		s := r.Host.Surface(viewer)
		if s == nil {
			return fmt.Errorf("no open surface for %q", st.Viewer)
		}
		s.InjectClick(st.X, st.Y, click)
	case "tick":
		n := max(st.Ticks, 1)
		for range n {
			r.Host.Advance(1)
			r.Engine.Tick(ctx)
		}
	case "flush":
		r.Engine.Flush(ctx)
	case "close":
		r.Engine.Close(ctx, viewer)
	case "hostclose":
		cause := lattice.CloseHost
		switch st.Cause {
		case "", "host":
		case "disconnect":
			cause = lattice.CloseDisconnect
		default:
			return fmt.Errorf("unknown close cause %q", st.Cause)
		}
		s := r.Host.Surface(viewer)
		if s == nil {
			return fmt.Errorf("no open surface for %q", st.Viewer)
		}
		s.InjectClose(cause)
	case "snapshot":
		s := r.Host.Surface(viewer)
		if s == nil {
			return fmt.Errorf("no open surface for %q", st.Viewer)
		}
		snap := Snapshot{Label: st.Label, Viewer: viewer, Text: s.Dump(r.Labeler)}
		r.snapshots = append(r.snapshots, snap)
		if r.Out != nil {
			if _, err := fmt.Fprintf(r.Out, "== %s\n%s", snap.Label, snap.Text); err != nil {
				return err
			}
		}
		if r.Dir != "" {
			if _, err := s.WriteDump(r.Dir, st.Label, r.Labeler); err != nil {
				return err
			}
		}
	}
	return nil
}
