// Package algorithm implements the lifecycle shared by every search engine of
// github.com/katalvlaran/lvsearch: a cooperative, pull-driven state machine
// that emits one Event per NextEvent call.
//
// Lifecycle:
//
//	CREATED ──first NextEvent──▶ ACTIVE ──exhaustion──▶ TERMINATED
//	                               │
//	                               └──Cancel / ctx / timeout / error──▶ CANCELED
//
// Transitions are monotone and irreversible. Every NextEvent call first
// checks for a pending cancellation or timeout and, if present, returns the
// corresponding error without doing any work. Long successor-generation calls
// run through CallBounded, which re-checks cancellation and deadlines at the
// configured poll interval (50ms by default) and gives up waiting when either
// fires. The engine never kills the generator; it only stops waiting.
//
// Events:
//
//   - Lifecycle:  AlgorithmInitialized, AlgorithmFinished, AlgorithmCanceled.
//   - Structural: GraphInitialized, NodeAdded, NodeRemoved, NodeTypeSwitch,
//     NodeExpansionCompleted.
//   - Results:    SolutionCandidateFound.
//
// Engines enqueue events while they work; NextEvent hands them out one at a
// time in emission order and notifies registered Observers synchronously.
//
// Errors:
//
//   - ErrEvaluationFailed      an evaluator could not score a path; the node is dropped.
//   - ErrGenerationFailed      root or successor generation failed; the run stops.
//   - ErrInterrupted           the caller's context was canceled; the run stops.
//   - ErrTimeout               a run or generator deadline passed; the run stops.
//   - ErrCanceled              Cancel was called; the run stops.
//   - ErrInvalidPathInjection  an injected path is not a valid successor chain.
//   - ErrInvariantViolation    a collaborator broke the engine's contract.
//   - ErrNoMoreEvents          the run terminated and every event was delivered.
//
// Concurrency:
//
//   - An engine is driven by one goroutine. Cancel, State and ID are safe to
//     call from any goroutine; everything else is not.
//   - A Registry tracks active runs so a supervisor can cancel one run
//     without touching its siblings.
package algorithm
