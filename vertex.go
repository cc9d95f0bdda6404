package hfsm

import "github.com/kairoslabs/hfsm/embedded"

// Vertex is any model node that can be a transition endpoint: a State, a
// FinalState or a PseudoState.
type Vertex interface {
	embedded.NamedElement
	base() *vertexBase
	Transitions() []*Transition
}

// vertexBase is embedded by every concrete Vertex. It owns the outgoing
// transitions (declaration order matters, per spec §5 ordering guarantee
// (a)) and the four pipelines the compiler populates.
type vertexBase struct {
	element
	owner    *Region
	outgoing []*Transition

	leave      []Action
	beginEnter []Action
	endEnter   []Action
	enter      []Action
}

// Transitions returns the vertex's outgoing transitions in declared order.
func (v *vertexBase) Transitions() []*Transition { return v.outgoing }

// OwnerRegion returns the region this vertex belongs to, or nil for the
// state machine root.
func (v *vertexBase) OwnerRegion() *Region { return v.owner }

func (v *vertexBase) addOutgoing(t *Transition) {
	v.outgoing = append(v.outgoing, t)
	v.model.clean = false
}

// regionSource is satisfied by anything NewState/NewFinalState/
// NewPseudoState can resolve a target Region from: an explicit *Region, or
// a *State/*StateMachine whose default region is lazily created.
type regionSource interface {
	ownedRegion() *Region
}

// stateOwner is satisfied by anything NewRegion can attach an explicit
// region to: a *State, or a *StateMachine (via its embedded root State).
type stateOwner interface {
	ownedState() *State
}
