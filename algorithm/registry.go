package algorithm

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Run is the view of an active run held by a Registry.
type Run interface {
	ID() uuid.UUID
	Name() string
	State() State
	Cancel()
}

// Registry tracks active runs so that a supervisor can interrupt a specific
// run without affecting its siblings. Runs register on activation and
// deregister when they terminate or are canceled.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]Run
}

// DefaultRegistry is the process-wide registry used unless WithRegistry overrides it.
var DefaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{runs: make(map[uuid.UUID]Run)}
}

// Register adds r.
func (r *Registry) Register(run Run) {
	r.mu.Lock()
	r.runs[run.ID()] = run
	r.mu.Unlock()
}

// Deregister removes the run with id, if present.
func (r *Registry) Deregister(id uuid.UUID) {
	r.mu.Lock()
	delete(r.runs, id)
	r.mu.Unlock()
}

// Lookup returns the active run with id.
func (r *Registry) Lookup(id uuid.UUID) (Run, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]

	return run, ok
}

// Cancel cancels the active run with id. Returns ErrRunNotFound for unknown IDs.
func (r *Registry) Cancel(id uuid.UUID) error {
	run, ok := r.Lookup(id)
	if !ok {
		return ErrRunNotFound
	}
	run.Cancel()

	return nil
}

// CancelAll cancels every active run.
func (r *Registry) CancelAll() {
	r.mu.RLock()
	runs := make([]Run, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	r.mu.RUnlock()

	for _, run := range runs {
		run.Cancel()
	}
}

// Active returns the IDs of the active runs, sorted for stable output.
func (r *Registry) Active() []uuid.UUID {
	r.mu.RLock()
	ids := make([]uuid.UUID, 0, len(r.runs))
	for id := range r.runs {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	return ids
}

// Len returns the number of active runs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.runs)
}
