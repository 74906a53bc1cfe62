package searchtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsearch/searchtree"
)

// buildSample builds r → {a, b}, b → {c} and returns the handles.
func buildSample(t *testing.T) (*searchtree.Tree[string, string, int], map[string]searchtree.Handle) {
	t.Helper()
	tr := searchtree.NewTree[string, string, int]()
	hs := make(map[string]searchtree.Handle)
	var err error
	hs["r"], err = tr.AddRoot("r")
	require.NoError(t, err)
	hs["a"], err = tr.AddChild(hs["r"], "a", "r-a")
	require.NoError(t, err)
	hs["b"], err = tr.AddChild(hs["r"], "b", "r-b")
	require.NoError(t, err)
	hs["c"], err = tr.AddChild(hs["b"], "c", "b-c")
	require.NoError(t, err)

	return tr, hs
}

func TestTree_AddAndLookup(t *testing.T) {
	tr, hs := buildSample(t)

	assert.Equal(t, 4, tr.Len())
	assert.Equal(t, []searchtree.Handle{hs["r"]}, tr.Roots())

	h, ok := tr.Lookup("c")
	assert.True(t, ok)
	assert.Equal(t, hs["c"], h)
	_, ok = tr.Lookup("zzz")
	assert.False(t, ok)

	n := tr.Node(hs["c"])
	require.NotNil(t, n)
	assert.Equal(t, 2, n.Depth)
	assert.Equal(t, hs["b"], n.Parent)
	assert.Equal(t, "b-c", n.Arc)
	assert.Equal(t, searchtree.Open, n.Type)
	assert.True(t, tr.Node(hs["r"]).IsRoot())
	assert.Nil(t, tr.Node(searchtree.Handle(99)))
}

func TestTree_DuplicateState(t *testing.T) {
	tr, hs := buildSample(t)

	_, err := tr.AddChild(hs["a"], "c", "a-c")
	assert.ErrorIs(t, err, searchtree.ErrDuplicateState)
	_, err = tr.AddRoot("r")
	assert.ErrorIs(t, err, searchtree.ErrDuplicateState)
	_, err = tr.AddChild(searchtree.Handle(42), "x", "")
	assert.ErrorIs(t, err, searchtree.ErrUnknownHandle)
}

func TestTree_PathReconstruction(t *testing.T) {
	tr, hs := buildSample(t)

	p := tr.Path(hs["c"])
	assert.Equal(t, []string{"r", "b", "c"}, p.States())
	assert.Equal(t, []string{"r-b", "b-c"}, p.Arcs())
	assert.Equal(t, "r", p.Root())
	assert.Equal(t, "c", p.Head())
	assert.False(t, p.Step(0).HasArc)
	assert.True(t, p.Step(2).HasArc)

	assert.True(t, tr.Path(searchtree.Handle(-5)).IsEmpty())
}

func TestTree_Reparent(t *testing.T) {
	tr, hs := buildSample(t)

	require.NoError(t, tr.Reparent(hs["c"], hs["a"], "a-c"))
	assert.Equal(t, []string{"r", "a", "c"}, tr.Path(hs["c"]).States())
	assert.Equal(t, 2, tr.Node(hs["c"]).Depth)

	// a node cannot become its own parent
	err := tr.Reparent(hs["b"], hs["b"], "loop")
	assert.Error(t, err)
}

func TestTree_LabelsAndTypes(t *testing.T) {
	tr, hs := buildSample(t)

	assert.False(t, tr.Node(hs["a"]).Labeled)
	tr.SetLabel(hs["a"], 7)
	tr.SetType(hs["a"], searchtree.Closed)
	assert.True(t, tr.Node(hs["a"]).Labeled)
	assert.Equal(t, 7, tr.Node(hs["a"]).Label)
	assert.Equal(t, searchtree.Closed, tr.Node(hs["a"]).Type)
	assert.Equal(t, "closed", searchtree.Closed.String())
	assert.Equal(t, "dead_end", searchtree.DeadEnd.String())
	assert.Equal(t, "unknown", searchtree.NodeType(99).String())
}
