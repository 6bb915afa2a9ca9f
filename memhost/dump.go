package memhost

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/phanxgames/lattice"
)

// Labeler turns a cell payload into the short text used in dumps.
type Labeler func(payload any) string

// DefaultLabeler uses fmt.Sprint on the payload.
func DefaultLabeler(payload any) string {
	return fmt.Sprint(payload)
}

// Dump renders the surface as a text grid, one row per line, cells padded to
// the widest label. Empty cells show as ".".
func (s *Surface) Dump(label Labeler) string {
	if label == nil {
		label = DefaultLabeler
	}
	s.mu.Lock()
	labels := make([]string, len(s.cells))
	width := 1
	for i, e := range s.cells {
		l := "."
		if e != nil {
			l = label(e.Payload)
			if l == "" {
				l = "?"
			}
		}
		labels[i] = l
		width = max(width, len(l))
	}
	shape := s.shape
	title := s.title
	s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s [%s]\n", title, shape)
	for y := 0; y < shape.Height; y++ {
		for x := 0; x < shape.Width; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%-*s", width, labels[y*shape.Width+x])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteDump writes the dump to dir/<label>.txt, with the label reduced to file
// name safe characters, and returns the path.
func (s *Surface) WriteDump(dir, label string, l Labeler) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, sanitizeLabel(label)+".txt")
	if err := os.WriteFile(path, []byte(s.Dump(l)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// sanitizeLabel turns a dump label into a file name: ASCII letters, digits,
// '-' and '.' pass through and every other rune becomes '_'.
func sanitizeLabel(label string) string {
	if label = strings.TrimSpace(label); label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
			return r
		}
		return '_'
	}, label)
}

// DumpPane renders a pane the way Dump renders a surface.
func DumpPane(p *lattice.Pane, label Labeler) string {
	s := &Surface{shape: p.Shape(), cells: make([]*lattice.Element, p.Shape().Cells())}
	for i := range s.cells {
		pt := p.Shape().Point(i)
		if e, ok := p.Get(pt.X, pt.Y); ok {
			s.cells[i] = &e
		}
	}
	return s.Dump(label)
}
