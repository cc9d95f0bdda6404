// Package hfsm implements a UML-style hierarchical finite state machine
// runtime: a model is assembled from Regions, States, PseudoStates and
// Transitions (this file and region.go/state.go/finalstate.go/
// pseudostate.go/transition.go), validated and compiled into per-element
// action pipelines (validator.go, compiler.go), and evaluated message by
// message against a pluggable per-instance active configuration
// (evaluator.go, package instance).
package hfsm

// RemoveTransition detaches t from its source's outgoing list and marks
// the model dirty. t itself is left otherwise intact (its pipelines are
// simply never consulted again after the next Compile).
func RemoveTransition(t *Transition) {
	out := t.source.base().outgoing
	for i, o := range out {
		if o == t {
			t.source.base().outgoing = append(out[:i], out[i+1:]...)
			break
		}
	}
	t.model.clean = false
}

// RemoveVertex detaches v from its owning region's children and removes
// every transition that targets it, marking the model dirty. Removing a
// region's resolved Initial is left to the next Validate/Compile pass to
// catch as a structural error, matching spec §3 invariant 2.
func RemoveVertex(v Vertex) {
	base := v.base()
	region := base.owner
	if region == nil {
		return
	}
	children := region.children
	for i, c := range children {
		if c == v {
			region.children = append(children[:i], children[i+1:]...)
			break
		}
	}
	if region.Initial == v {
		region.Initial = nil
	}
	for _, elem := range region.model.namespace {
		if t, ok := elem.(*Transition); ok && t.target == v {
			RemoveTransition(t)
		}
	}
	region.model.clean = false
}
