package hfsm

import (
	"fmt"

	"github.com/kairoslabs/hfsm/embedded"
	"github.com/kairoslabs/hfsm/kind"
)

// Re-exported transition kinds, so callers of NewTransition rarely need to
// import the kind package directly.
var (
	External = kind.External
	Internal = kind.Internal
	Local    = kind.Local
)

// Transition is the tuple (source, target, kind, guard, actions) from
// spec Data Model §3. A nil target denotes an Internal transition. Local
// is only honored when target is a proper descendant of source;
// otherwise the constructor normalizes the kind to External (invariant 4).
type Transition struct {
	element
	source Vertex
	target Vertex
	guard  Guard
	isElse bool

	actions []Action

	// traverse is the compiled exit -> actions -> entry sequence (§4.2
	// Pass B), and compoundTarget records whether target is itself a
	// pseudo-state requiring continuation chaining at runtime (§4.3).
	traverse       []Action
	compoundTarget bool
}

// NewTransition creates a transition from source to target. A nil target
// denotes an internal transition. explicitKind may supply Local or
// External to override the default of External; Internal is always
// implied by a nil target regardless of what is passed.
func NewTransition(source Vertex, target Vertex, explicitKind ...uint64) *Transition {
	model := source.base().model
	tk := kind.External
	if len(explicitKind) > 0 {
		tk = explicitKind[0]
	}
	switch {
	case target == nil:
		tk = kind.Internal
	case kind.IsKind(tk, kind.Local) && !isDescendant(source, target):
		tk = kind.External
	}
	name := fmt.Sprintf(".transition%d", len(model.namespace))
	t := &Transition{
		element: newElement(model, tk, name, source),
		source:  source,
		target:  target,
	}
	source.base().addOutgoing(t)
	model.namespace[t.QualifiedName()] = t
	if target != nil && kind.IsKind(target.Kind(), kind.PseudoState) {
		t.compoundTarget = true
	}
	return t
}

// Source returns the transition's source vertex.
func (t *Transition) Source() Vertex { return t.source }

// Target returns the transition's target vertex, or nil for an internal
// transition.
func (t *Transition) Target() Vertex { return t.target }

// When sets the transition's guard, replacing any previous one. Returns t
// for chaining.
func (t *Transition) When(g Guard) *Transition {
	t.guard = g
	t.model.clean = false
	return t
}

// Else marks the transition as the unguarded fallback branch of a Choice
// or Junction, clearing any previously set guard. Returns t for chaining.
func (t *Transition) Else() *Transition {
	t.isElse = true
	t.guard = nil
	t.model.clean = false
	return t
}

// Effect appends an action to run when the transition fires. Returns t for
// chaining.
func (t *Transition) Effect(a Action) *Transition {
	t.actions = append(t.actions, a)
	t.model.clean = false
	return t
}

// IsElse reports whether Else() was called on this transition.
func (t *Transition) IsElse() bool { return t.isElse }

// GuardFn returns the transition's guard, or nil if none was set.
func (t *Transition) GuardFn() Guard { return t.guard }

// evalGuard runs the guard (defaulting to "always true" per spec Data
// Model §3), against event and instance.
func (t *Transition) evalGuard(event Event, inst embedded.Instance) bool {
	if t.guard == nil {
		return true
	}
	return t.guard(event, inst)
}
