package algorithm

import (
	"cmp"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvsearch/searchtree"
)

// EventKind enumerates the event taxonomy.
type EventKind int

const (
	KindAlgorithmInitialized EventKind = iota
	KindAlgorithmFinished
	KindAlgorithmCanceled
	KindGraphInitialized
	KindNodeAdded
	KindNodeRemoved
	KindNodeTypeSwitch
	KindNodeExpansionCompleted
	KindSolutionCandidateFound
)

var kindNames = [...]string{
	KindAlgorithmInitialized:   "algorithm_initialized",
	KindAlgorithmFinished:      "algorithm_finished",
	KindAlgorithmCanceled:      "algorithm_canceled",
	KindGraphInitialized:       "graph_initialized",
	KindNodeAdded:              "node_added",
	KindNodeRemoved:            "node_removed",
	KindNodeTypeSwitch:         "node_type_switch",
	KindNodeExpansionCompleted: "node_expansion_completed",
	KindSolutionCandidateFound: "solution_candidate_found",
}

// String returns the snake_case name of the kind.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}

	return kindNames[k]
}

// Structural reports whether events of this kind describe the search graph.
func (k EventKind) Structural() bool {
	return k >= KindGraphInitialized && k <= KindNodeExpansionCompleted
}

// Event is implemented by every event type.
type Event interface {
	Kind() EventKind
	Meta() EventMeta
}

// EventMeta is carried by every event.
type EventMeta struct {
	// RunID identifies the run that emitted the event.
	RunID uuid.UUID
	// Algorithm is the engine name, e.g. "bestfirst".
	Algorithm string
	// Seq is the 0-based emission index within the run.
	Seq int
	// Time is the emission time.
	Time time.Time
}

// Meta returns m; it is promoted to every event embedding EventMeta.
func (m EventMeta) Meta() EventMeta { return m }

// Solution is a goal path together with its evaluation label, if any.
type Solution[N comparable, A any, V any] struct {
	Path   searchtree.Path[N, A]
	Score  V
	Scored bool
}

// Best returns the solution with the smallest score, the earliest among
// equals. Unscored solutions are only chosen when none is scored, in which
// case the first one wins. ok is false for an empty slice.
func Best[N comparable, A any, V cmp.Ordered](sols []Solution[N, A, V]) (best Solution[N, A, V], ok bool) {
	if len(sols) == 0 {
		return best, false
	}
	best = sols[0]
	for _, sol := range sols[1:] {
		if !sol.Scored {
			continue
		}
		if !best.Scored || cmp.Less(sol.Score, best.Score) {
			best = sol
		}
	}

	return best, true
}

// AlgorithmInitialized is emitted once when a run becomes active.
type AlgorithmInitialized struct {
	EventMeta
}

func (AlgorithmInitialized) Kind() EventKind { return KindAlgorithmInitialized }

// AlgorithmFinished is the last event of a terminated run.
type AlgorithmFinished struct {
	EventMeta
	Expansions int
	Solutions  int
	// Exhausted is false when the run stopped on its expansion budget.
	Exhausted bool
}

func (AlgorithmFinished) Kind() EventKind { return KindAlgorithmFinished }

// AlgorithmCanceled is delivered to observers when a run is canceled. It is
// never returned by NextEvent; the caller receives Cause as an error instead.
type AlgorithmCanceled struct {
	EventMeta
	Cause error
}

func (AlgorithmCanceled) Kind() EventKind { return KindAlgorithmCanceled }

// GraphInitialized announces the root nodes.
type GraphInitialized[N comparable] struct {
	EventMeta
	Roots []N
}

func (GraphInitialized[N]) Kind() EventKind { return KindGraphInitialized }

// NodeAdded announces a discovered child.
type NodeAdded[N comparable, A any] struct {
	EventMeta
	Parent N
	Child  N
	Arc    A
	Tag    string
	Type   searchtree.NodeType
}

func (NodeAdded[N, A]) Kind() EventKind { return KindNodeAdded }

// NodeRemoved announces a node that was dropped from the search.
type NodeRemoved[N comparable] struct {
	EventMeta
	Node N
}

func (NodeRemoved[N]) Kind() EventKind { return KindNodeRemoved }

// NodeTypeSwitch announces a change of a node's structural role.
type NodeTypeSwitch[N comparable] struct {
	EventMeta
	Node N
	Type searchtree.NodeType
}

func (NodeTypeSwitch[N]) Kind() EventKind { return KindNodeTypeSwitch }

// NodeExpansionCompleted announces that a node's successors were generated.
type NodeExpansionCompleted[N comparable] struct {
	EventMeta
	Node N
}

func (NodeExpansionCompleted[N]) Kind() EventKind { return KindNodeExpansionCompleted }

// SolutionCandidateFound announces a goal path.
type SolutionCandidateFound[N comparable, A any, V any] struct {
	EventMeta
	Solution Solution[N, A, V]
}

func (SolutionCandidateFound[N, A, V]) Kind() EventKind { return KindSolutionCandidateFound }

// Observer receives delivered events.
type Observer interface {
	OnEvent(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// OnEvent calls f.
func (f ObserverFunc) OnEvent(ev Event) { f(ev) }
