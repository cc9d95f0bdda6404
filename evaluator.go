package hfsm

import (
	"fmt"

	"github.com/kairoslabs/hfsm/embedded"
	"github.com/kairoslabs/hfsm/kind"
)

// completionEvent is the synthetic message passed to a guard when checking
// whether a just-completed vertex has an enabled completion transition
// (spec §4.3 step 3: "guards accept a null message-equivalent"). A
// transition meant to act as a completion transition either leaves its
// guard nil or checks event.Name() against this value explicitly; a
// transition meant to react only to a specific named message should check
// event.Name() itself, since this model carries no separate trigger field.
var completionEvent Event = event{name: "$completion"}

// initEvent is passed to the root's enter pipeline during Initialise.
var initEvent Event = event{name: "$init"}

// Compile is the package-level form of (*StateMachine).Compile.
func Compile(sm *StateMachine) []error { return sm.Compile() }

// Initialise is the package-level form of (*StateMachine).Initialise.
func Initialise(sm *StateMachine, instance embedded.Instance) error {
	return sm.Initialise(instance)
}

// Evaluate is the package-level form of (*StateMachine).Evaluate.
func Evaluate(sm *StateMachine, instance embedded.Instance, event Event) bool {
	return sm.Evaluate(instance, event)
}

// Initialise compiles sm if needed and runs the root's enter pipeline
// against instance, establishing its initial active configuration.
func (sm *StateMachine) Initialise(instance embedded.Instance) error {
	if !sm.clean {
		if errs := sm.Compile(); len(errs) > 0 {
			return ErrValidationFailed
		}
	}
	runActions(sm.State.enter, initEvent, instance, false)
	return nil
}

// Evaluate runs the selection procedure (spec §4.3) for event against
// instance's current active configuration: it recurses depth-first into
// the deepest active vertex of every region, tries that vertex's own
// outgoing transitions first, and only then falls back to its ancestor's.
// The first enabled transition found anywhere is executed and Evaluate
// returns true; if none is found, or instance is already terminated, it
// returns false without side effects.
func (sm *StateMachine) Evaluate(instance embedded.Instance, event Event) bool {
	if sm.cfg.AutoCompile && !sm.clean {
		if errs := sm.Compile(); len(errs) > 0 {
			return false
		}
	}
	if instance.IsTerminated() {
		return false
	}
	stop := sm.cfg.tracerOrDefault().Step(nil, "evaluate", event.Name())
	consumed := sm.selectAtVertex(&sm.State, event, instance)
	stop()
	return consumed
}

// selectAtVertex implements the recursive half of the selection procedure:
// for a State, try every child region's current vertex before this state's
// own outgoing transitions (inner-before-outer, spec §5 ordering guarantee
// (b)). A FinalState or a Terminate pseudo-state recorded as a region's
// current vertex has no outgoing transitions, so any non-State vertex
// returns false here.
func (sm *StateMachine) selectAtVertex(v Vertex, event Event, instance embedded.Instance) bool {
	st, ok := v.(*State)
	if !ok {
		return false
	}
	for _, r := range st.regions {
		curQN, ok := instance.GetCurrent(r.QualifiedName())
		if !ok {
			continue
		}
		cur, ok2 := r.model.namespace[curQN].(Vertex)
		if !ok2 {
			continue
		}
		if sm.selectAtVertex(cur, event, instance) {
			return true
		}
	}
	for _, t := range st.outgoing {
		if t.evalGuard(event, instance) {
			sm.executeTransition(t, event, instance)
			return true
		}
	}
	return false
}

// executeTransition runs t's compiled traverse pipeline, continues into a
// compound pseudo-state target if there is one, and -- once the chain has
// actually settled on a real State or FinalState -- performs completion
// evaluation from there upward (spec §4.3 steps 2-3). Internal transitions
// never trigger completion evaluation here; enabling that is opt-in via
// Config.InternalTransitionsTriggerCompletion, compiled directly into
// their traverse pipeline instead (spec §4.2 Pass B).
func (sm *StateMachine) executeTransition(t *Transition, event Event, instance embedded.Instance) {
	runActions(t.traverse, event, instance, false)

	if t.compoundTarget {
		ps := t.target.(*PseudoState)
		sm.selectAndExecutePseudo(ps, event, instance)
		return
	}
	if kind.IsKind(t.Kind(), kind.Internal) {
		return
	}
	sm.tryCompletion(completionSeed(t.target), instance)
}

// completionSeed picks the State tryCompletion should start climbing from
// for a vertex that was just entered (or, for an Internal transition, whose
// regions may have just changed underneath it without it being re-entered):
// a non-final State is itself complete-or-not (spec §4.3 step 3, "simple
// state"), so it is its own seed; a FinalState is never itself a completion
// source, so its owning State -- whose regions may now all be final -- is
// used instead. Any other vertex kind never reaches here.
func completionSeed(v Vertex) *State {
	switch vv := v.(type) {
	case *State:
		return vv
	case *FinalState:
		return ownerStateOf(vv)
	default:
		return nil
	}
}

// enterRegionInitial resolves region's default entry: if historical
// (either region's own resolved Initial is a History kind, or
// cascadeDeep says an ancestor region is a DeepHistory whose cascade
// reaches this region regardless of its own Initial kind) and instance
// already recorded a current vertex for region, that vertex is re-entered
// directly. Otherwise region's Initial pseudo-state's sole outgoing
// transition is taken, exactly like any other transition.
func (sm *StateMachine) enterRegionInitial(region *Region, cascadeDeep bool, event Event, instance embedded.Instance) {
	initVertex := region.Initial
	if initVertex == nil {
		sm.cfg.Logger.Error(fmt.Sprintf("hfsm: region %s has no resolved initial vertex; compile before evaluating", region.QualifiedName()))
		return
	}

	historical := cascadeDeep || kind.IsKind(initVertex.Kind(), kind.History)
	if historical {
		if recordedQN, ok := instance.GetCurrent(region.QualifiedName()); ok {
			if recorded, ok2 := region.model.namespace[recordedQN].(Vertex); ok2 {
				deep := cascadeDeep || kind.IsKind(initVertex.Kind(), kind.DeepHistory)
				runActions(recorded.base().enter, event, instance, deep)
				sm.tryCompletion(completionSeed(recorded), instance)
				return
			}
		}
	}

	ps, ok := initVertex.(*PseudoState)
	if !ok || len(ps.outgoing) == 0 {
		sm.cfg.Logger.Error(fmt.Sprintf("hfsm: region %s initial vertex has no outgoing transition", region.QualifiedName()))
		return
	}
	sm.executeTransition(ps.outgoing[0], event, instance)
}

// selectAndExecutePseudo continues a compound transition chain once it has
// landed on a pseudo-state target (spec §4.3: Choice, Junction, Initial and
// History all require a further selection before the configuration
// settles; Terminate requires none, its beginEnter already latched the
// instance as terminated).
func (sm *StateMachine) selectAndExecutePseudo(p *PseudoState, event Event, instance embedded.Instance) bool {
	switch {
	case kind.IsKind(p.psKind, kind.Choice):
		return sm.selectChoice(p, event, instance)
	case kind.IsKind(p.psKind, kind.Junction):
		return sm.selectJunction(p, event, instance)
	case kind.IsKind(p.psKind, kind.Initial, kind.History):
		sm.enterRegionInitial(p.owner, false, event, instance)
		return true
	default:
		return true
	}
}

// selectChoice evaluates p's guarded outgoing transitions against event: if
// exactly one is enabled it is taken; if several are enabled, cfg.Random
// picks uniformly among them; otherwise the else branch (if any) is taken.
// A Choice with no enabled branch and no else is ill-formed (spec
// invariant 7) and is logged, not returned, as an evaluation-time error.
func (sm *StateMachine) selectChoice(p *PseudoState, event Event, instance embedded.Instance) bool {
	var enabled []*Transition
	var elseT *Transition
	for _, t := range p.outgoing {
		if t.isElse {
			elseT = t
			continue
		}
		if t.evalGuard(event, instance) {
			enabled = append(enabled, t)
		}
	}
	var chosen *Transition
	switch {
	case len(enabled) == 1:
		chosen = enabled[0]
	case len(enabled) > 1:
		chosen = enabled[sm.cfg.Random(uint32(len(enabled)))]
	case elseT != nil:
		chosen = elseT
	default:
		sm.cfg.Logger.Error(fmt.Sprintf("%s: %s", ErrChoiceIllFormed, p.QualifiedName()))
		return false
	}
	sm.executeTransition(chosen, event, instance)
	return true
}

// selectJunction requires exactly one of p's non-else outgoing transitions
// to be enabled, falling back to else when none are; zero or multiple
// enabled with no else, or more than one enabled, is ill-formed (spec
// invariant 7) and is logged, not returned.
func (sm *StateMachine) selectJunction(p *PseudoState, event Event, instance embedded.Instance) bool {
	var enabled []*Transition
	var elseT *Transition
	for _, t := range p.outgoing {
		if t.isElse {
			elseT = t
			continue
		}
		if t.evalGuard(event, instance) {
			enabled = append(enabled, t)
		}
	}
	switch {
	case len(enabled) == 1:
		sm.executeTransition(enabled[0], event, instance)
		return true
	case len(enabled) == 0 && elseT != nil:
		sm.executeTransition(elseT, event, instance)
		return true
	default:
		sm.cfg.Logger.Error(fmt.Sprintf("%s: %s", ErrJunctionIllFormed, p.QualifiedName()))
		return false
	}
}

// tryCompletion walks upward from s through its ancestor states, firing at
// most one completion transition from the first complete state that has an
// enabled one and returning immediately -- the fired transition's own executeTransition
// call continues the cascade ("this may chain further", spec §4.3 step 3)
// from wherever it lands.
func (sm *StateMachine) tryCompletion(s *State, instance embedded.Instance) {
	for s != nil {
		if stateIsComplete(s, instance) {
			for _, t := range s.outgoing {
				if t.evalGuard(completionEvent, instance) {
					sm.executeTransition(t, completionEvent, instance)
					return
				}
			}
		}
		if s.owner == nil {
			return
		}
		s = s.owner.owner
	}
}

// stateIsComplete reports whether s is complete: a simple state (no
// regions) always is; a composite or orthogonal state is only once every
// region's recorded current vertex is a FinalState (spec §4.3 step 3).
func stateIsComplete(s *State, instance embedded.Instance) bool {
	if len(s.regions) == 0 {
		return true
	}
	for _, r := range s.regions {
		curQN, ok := instance.GetCurrent(r.QualifiedName())
		if !ok || !r.isComplete(curQN) {
			return false
		}
	}
	return true
}
