package hfsm_test

import (
	"testing"

	"github.com/kairoslabs/hfsm"
	"github.com/kairoslabs/hfsm/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderQualifiedNames(t *testing.T) {
	sm := hfsm.NewStateMachine("door")
	open := hfsm.NewState("open", sm)
	closed := hfsm.NewState("closed", sm)
	init := hfsm.NewInitial("initial", sm)
	hfsm.NewTransition(init, closed)
	hfsm.NewTransition(open, closed)

	assert.Equal(t, "door.open", open.QualifiedName())
	assert.Equal(t, "door.closed", closed.QualifiedName())
	assert.Equal(t, open.OwnerRegion().QualifiedName(), open.Owner())
	assert.Same(t, open.OwnerRegion(), closed.OwnerRegion())
}

func TestDefaultRegionIsLazyAndShared(t *testing.T) {
	sm := hfsm.NewStateMachine("m")
	parent := hfsm.NewState("parent", sm)
	a := hfsm.NewState("a", parent)
	b := hfsm.NewState("b", parent)

	require.Len(t, parent.Regions(), 1)
	assert.Same(t, a.OwnerRegion(), b.OwnerRegion())
	assert.Equal(t, "m."+hfsm.DefaultRegionName+".parent."+hfsm.DefaultRegionName, a.OwnerRegion().QualifiedName())
}

func TestOrthogonalStateRequiresExplicitRegions(t *testing.T) {
	sm := hfsm.NewStateMachine("m")
	parent := hfsm.NewState("parent", sm)
	r1 := hfsm.NewRegion("r1", parent)
	r2 := hfsm.NewRegion("r2", parent)
	hfsm.NewState("a", r1)
	hfsm.NewState("b", r2)

	assert.True(t, parent.IsOrthogonal())
	assert.Panics(t, func() {
		hfsm.NewState("c", parent) // ambiguous: parent now owns 2 regions
	})
}

func TestLocalTransitionNormalizesToExternal(t *testing.T) {
	sm := hfsm.NewStateMachine("m")
	parent := hfsm.NewState("parent", sm)
	child := hfsm.NewState("child", parent)
	sibling := hfsm.NewState("sibling", sm)

	// sibling is not a descendant of parent, so Local must normalize.
	tr := hfsm.NewTransition(parent, sibling, hfsm.Local)
	assert.True(t, kind.IsKind(tr.Kind(), kind.External))

	// child is a descendant of parent, so Local is honored as given.
	tr2 := hfsm.NewTransition(parent, child, hfsm.Local)
	assert.True(t, kind.IsKind(tr2.Kind(), kind.Local))
}

func TestRemoveVertexDetachesVertexAndIncomingTransitions(t *testing.T) {
	sm := hfsm.NewStateMachine("m")
	a := hfsm.NewState("a", sm)
	b := hfsm.NewState("b", sm)
	hfsm.NewTransition(a, b)

	hfsm.RemoveVertex(b)

	region := a.OwnerRegion()
	assert.Len(t, region.Vertices(), 1)
	assert.Empty(t, a.Transitions())
}
