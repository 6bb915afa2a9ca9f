package lattice

import (
	"fmt"
	"sort"
)

// Pipeline is an interface's transforms in execution order.
type Pipeline struct {
	transforms []*Transform
}

// newPipeline sorts transforms by (priority, registration index). The sort is
// stable so equal priorities keep registration order.
func newPipeline(transforms []*Transform) *Pipeline {
	sorted := make([]*Transform, len(transforms))
	copy(sorted, transforms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Pipeline{transforms: sorted}
}

// Len returns the number of transforms.
func (p *Pipeline) Len() int {
	return len(p.transforms)
}

// At returns the transform at execution position i.
func (p *Pipeline) At(i int) *Transform {
	return p.transforms[i]
}

// dirtySet marks transforms by execution position.
type dirtySet []bool

func (p *Pipeline) allDirty() dirtySet {
	d := make(dirtySet, len(p.transforms))
	for i := range d {
		d[i] = true
	}
	return d
}

func (d dirtySet) count() int {
	n := 0
	for _, v := range d {
		if v {
			n++
		}
	}
	return n
}

func (d dirtySet) union(other dirtySet) {
	for i, v := range other {
		if v && i < len(d) {
			d[i] = true
		}
	}
}

// passResult summarizes one run of the pipeline.
type passResult struct {
	ran      int
	failures []error
}

// run executes the dirty transforms in order against v. Each transform's
// writes are committed only if it succeeds; a failure is recorded and the
// pass continues with the next transform.
func (p *Pipeline) run(v *View, dirty dirtySet) passResult {
	var res passResult
	for i, t := range p.transforms {
		if i >= len(dirty) || !dirty[i] {
			continue
		}
		res.ran++
		if err := runTransform(t, v); err != nil {
			v.discardStage()
			res.failures = append(res.failures, err)
			continue
		}
		v.commitStage()
	}
	return res
}

func runTransform(t *Transform, v *View) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", r)
			}
			err = wrapError(CodeTransformFailure, cause, "transform %s panicked", t)
		}
	}()
	if ferr := t.Fn(v); ferr != nil {
		return wrapError(CodeTransformFailure, ferr, "transform %s", t)
	}
	return nil
}
