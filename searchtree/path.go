package searchtree

import (
	"fmt"
	"strings"
)

// Step is one element of a Path: a state and the label of the arc that led
// to it. HasArc is false for the root step.
type Step[N comparable, A any] struct {
	State  N
	Arc    A
	HasArc bool
}

// Path is an immutable, root-anchored sequence of steps. The zero value is
// the empty path. Extend and CutHead return new paths and never alias the
// receiver's storage.
type Path[N comparable, A any] struct {
	steps []Step[N, A]
}

// NewPath returns the single-step path consisting of root.
func NewPath[N comparable, A any](root N) Path[N, A] {
	return Path[N, A]{steps: []Step[N, A]{{State: root}}}
}

// Len returns the number of states on the path.
func (p Path[N, A]) Len() int { return len(p.steps) }

// IsEmpty reports whether the path has no steps.
func (p Path[N, A]) IsEmpty() bool { return len(p.steps) == 0 }

// Root returns the first state. It panics on an empty path.
func (p Path[N, A]) Root() N { return p.steps[0].State }

// Head returns the last state. It panics on an empty path.
func (p Path[N, A]) Head() N { return p.steps[len(p.steps)-1].State }

// Step returns the i-th step.
func (p Path[N, A]) Step(i int) Step[N, A] { return p.steps[i] }

// States returns a copy of the states from root to head.
func (p Path[N, A]) States() []N {
	out := make([]N, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.State
	}

	return out
}

// Arcs returns a copy of the arc labels; len(Arcs()) == Len()-1 for non-empty paths.
func (p Path[N, A]) Arcs() []A {
	if len(p.steps) < 2 {
		return nil
	}
	out := make([]A, 0, len(p.steps)-1)
	for _, s := range p.steps[1:] {
		out = append(out, s.Arc)
	}

	return out
}

// Extend returns a new path with child appended, reached through arc.
func (p Path[N, A]) Extend(child N, arc A) Path[N, A] {
	steps := make([]Step[N, A], len(p.steps), len(p.steps)+1)
	copy(steps, p.steps)
	if len(steps) == 0 {
		return Path[N, A]{steps: append(steps, Step[N, A]{State: child})}
	}

	return Path[N, A]{steps: append(steps, Step[N, A]{State: child, Arc: arc, HasArc: true})}
}

// CutHead returns the path without its last step.
// Returns ErrEmptyPath when called on an empty path.
func (p Path[N, A]) CutHead() (Path[N, A], error) {
	if len(p.steps) == 0 {
		return p, ErrEmptyPath
	}
	steps := make([]Step[N, A], len(p.steps)-1)
	copy(steps, p.steps)

	return Path[N, A]{steps: steps}, nil
}

// Contains reports whether state occurs on the path.
func (p Path[N, A]) Contains(state N) bool {
	for _, s := range p.steps {
		if s.State == state {
			return true
		}
	}

	return false
}

// String renders the path as "[s0 s1 ... sn]".
func (p Path[N, A]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range p.steps {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, s.State)
	}
	b.WriteByte(']')

	return b.String()
}
