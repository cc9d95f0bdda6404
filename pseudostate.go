package hfsm

import "github.com/kairoslabs/hfsm/kind"

// PseudoState is a transient Vertex used to structure transitions: Initial,
// ShallowHistory, DeepHistory, Choice, Junction or Terminate.
type PseudoState struct {
	vertexBase
	psKind uint64
}

// NewPseudoState creates a pseudo-state of kind k (one of kind.Initial,
// kind.ShallowHistory, kind.DeepHistory, kind.Choice, kind.Junction,
// kind.Terminate) under parent.
func NewPseudoState(name string, parent regionSource, k uint64) *PseudoState {
	region := parent.ownedRegion()
	model := region.model
	p := &PseudoState{
		vertexBase: vertexBase{
			element: newElement(model, k, name, region),
			owner:   region,
		},
		psKind: k,
	}
	region.addChild(p)
	model.namespace[p.QualifiedName()] = p
	return p
}

// NewInitial creates the region's Initial pseudo-state. Every region must
// have exactly one initial-family child (validated); this is usually it.
func NewInitial(name string, parent regionSource) *PseudoState {
	return NewPseudoState(name, parent, kind.Initial)
}

// NewShallowHistory creates a ShallowHistory pseudo-state: on restoration
// it re-enters only the immediate child recorded for its region.
func NewShallowHistory(name string, parent regionSource) *PseudoState {
	return NewPseudoState(name, parent, kind.ShallowHistory)
}

// NewDeepHistory creates a DeepHistory pseudo-state: on restoration it
// cascades history semantics to every descendant region, recursively
// restoring the full nested configuration.
func NewDeepHistory(name string, parent regionSource) *PseudoState {
	return NewPseudoState(name, parent, kind.DeepHistory)
}

// NewChoice creates a Choice pseudo-state: at runtime its enabled outgoing
// transitions are collected and one is picked uniformly at random via the
// engine's Random function.
func NewChoice(name string, parent regionSource) *PseudoState {
	return NewPseudoState(name, parent, kind.Choice)
}

// NewJunction creates a Junction pseudo-state: at runtime exactly one
// non-else outgoing transition must be enabled (or the else branch is
// taken); more than one enabled is ill-formed.
func NewJunction(name string, parent regionSource) *PseudoState {
	return NewPseudoState(name, parent, kind.Junction)
}

// NewTerminate creates a Terminate pseudo-state: entering it latches the
// instance's terminated flag and accepts no outgoing transitions.
func NewTerminate(name string, parent regionSource) *PseudoState {
	return NewPseudoState(name, parent, kind.Terminate)
}

func (p *PseudoState) base() *vertexBase { return &p.vertexBase }

// PseudoKind returns the specific pseudo-state kind (Initial,
// ShallowHistory, DeepHistory, Choice, Junction or Terminate).
func (p *PseudoState) PseudoKind() uint64 { return p.psKind }
