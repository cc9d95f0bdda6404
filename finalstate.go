package hfsm

import "github.com/kairoslabs/hfsm/kind"

// FinalState is a Vertex with no outgoing transitions (validated); a
// region is complete when its current vertex is a FinalState.
type FinalState struct {
	vertexBase
}

// NewFinalState creates a final state under parent (an explicit *Region,
// or a *State/*StateMachine whose default region is lazily created).
func NewFinalState(name string, parent regionSource) *FinalState {
	region := parent.ownedRegion()
	model := region.model
	f := &FinalState{
		vertexBase: vertexBase{
			element: newElement(model, kind.FinalState, name, region),
			owner:   region,
		},
	}
	region.addChild(f)
	model.namespace[f.QualifiedName()] = f
	return f
}

func (f *FinalState) base() *vertexBase { return &f.vertexBase }
