package depthfirst

import (
	"github.com/katalvlaran/lvsearch/searchtree"
)

// Name is the algorithm name carried by events, logs and spans.
const Name = "depthfirst"

// frame is one entry of the current path.
type frame struct {
	node searchtree.Handle
	// choice is the index of node in its parent's successor list, or in the
	// root list for the first frame.
	choice int
}
