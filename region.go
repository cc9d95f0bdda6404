package hfsm

import "github.com/kairoslabs/hfsm/kind"

// Region is a named container owned by exactly one State, holding an
// ordered list of child vertices. Exactly one child must be an
// initial-family pseudo-state, resolved into Initial during compile
// (validated by the Validator). See spec Data Model §3.
type Region struct {
	element
	owner    *State
	children []Vertex
	// Initial is the resolved initial-family child (Initial,
	// ShallowHistory or DeepHistory), set by the Validator.
	Initial Vertex

	leave      []Action
	beginEnter []Action
	endEnter   []Action
	enter      []Action
}

// NewRegion creates an explicit named region under parent, used to model
// orthogonal states (≥2 regions active concurrently). Simple and
// composite states normally never call this directly -- State's default
// region is created lazily by NewState/NewFinalState/NewPseudoState.
func NewRegion(name string, parent stateOwner) *Region {
	owner := parent.ownedState()
	model := owner.model
	r := &Region{
		element: newElement(model, kind.Region, name, owner),
		owner:   owner,
	}
	owner.regions = append(owner.regions, r)
	model.namespace[r.QualifiedName()] = r
	model.clean = false
	return r
}

func (r *Region) ownedRegion() *Region { return r }

// Vertices returns the region's children in declared order.
func (r *Region) Vertices() []Vertex { return r.children }

// OwnerState returns the State (or StateMachine root) this region belongs to.
func (r *Region) OwnerState() *State { return r.owner }

// isComplete reports whether currentQN, the instance's current vertex in
// this region, names a FinalState -- used by the evaluator's completion-evaluation step for
// composite/orthogonal states.
func (r *Region) isComplete(currentQN string) bool {
	v, ok := r.model.namespace[currentQN]
	if !ok {
		return false
	}
	vertex, ok := v.(Vertex)
	return ok && kind.IsKind(vertex.Kind(), kind.FinalState)
}

func (r *Region) addChild(v Vertex) {
	r.children = append(r.children, v)
	r.model.clean = false
}
