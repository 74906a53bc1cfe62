package bestfirst

import "errors"

// Name is the algorithm name carried by events, logs and spans.
const Name = "bestfirst"

// ErrNilEvaluator is returned when no path evaluator is supplied.
var ErrNilEvaluator = errors.New("bestfirst: evaluator is nil")
