package hfsm

import (
	"github.com/kairoslabs/hfsm/embedded"
	"github.com/kairoslabs/hfsm/kind"
)

// Compile runs the Validator and, if the model passes, builds every
// element's leave/beginEnter/endEnter/enter pipeline (Pass A) followed by
// every transition's traverse pipeline (Pass B), per spec §4.2. On success
// it marks the model clean and returns nil; on failure it returns the
// validation errors and leaves clean false, so the previous pipelines (if
// any) stay in place rather than being partially overwritten.
func (sm *StateMachine) Compile() []error {
	stop := sm.cfg.tracerOrDefault().Step(nil, "compile", sm.QualifiedName())
	var stepErr error
	defer func() { stop(stepErr) }()

	if errs := Validate(sm); len(errs) > 0 {
		stepErr = ErrValidationFailed
		return errs
	}

	compileState(sm, &sm.State)
	compileRegions(sm, &sm.State, false)
	for _, elem := range sm.namespace {
		if t, ok := elem.(*Transition); ok {
			compileTransition(sm, t)
		}
	}

	sm.clean = true
	return nil
}

// compileRegions builds the leave/enter pipelines for every region owned
// by s and recurses into their children, depth-first. deepHistoryAbove is
// true if any ancestor region's resolved Initial is a DeepHistory
// pseudo-state -- it cascades to every region nested under s regardless of
// that region's own Initial kind (spec §4.2 Pass A).
func compileRegions(sm *StateMachine, s *State, deepHistoryAbove bool) {
	for _, r := range s.regions {
		compileRegionPipelines(sm, r, deepHistoryAbove)

		cascade := deepHistoryAbove
		if r.Initial != nil {
			cascade = cascade || kind.IsKind(r.Initial.Kind(), kind.DeepHistory)
		}

		for _, v := range r.children {
			switch vv := v.(type) {
			case *State:
				compileState(sm, vv)
				compileRegions(sm, vv, cascade)
			case *FinalState:
				compileFinalState(vv)
			case *PseudoState:
				compilePseudoState(vv)
			}
		}
	}
}

func compileRegionPipelines(sm *StateMachine, r *Region, deepHistoryAbove bool) {
	r.leave = []Action{func(e Event, i embedded.Instance, dh bool) {
		if curQN, ok := i.GetCurrent(r.QualifiedName()); ok {
			if v, ok2 := r.model.namespace[curQN].(Vertex); ok2 {
				runActions(v.base().leave, e, i, dh)
			}
		}
	}}
	r.beginEnter = nil
	r.endEnter = []Action{func(e Event, i embedded.Instance, dh bool) {
		sm.enterRegionInitial(r, deepHistoryAbove, e, i)
	}}
	r.enter = append(append([]Action{}, r.beginEnter...), r.endEnter...)
}

// compileState builds s's own leave/beginEnter/endEnter/enter. Every step
// below reads a child region's pipeline through a closure that
// dereferences it at call time, so construction order between s and its
// regions never matters -- a region compiled later still gets picked up
// correctly the first time the pipeline actually runs.
func compileState(sm *StateMachine, s *State) {
	s.leave = nil
	for i := len(s.regions) - 1; i >= 0; i-- {
		r := s.regions[i]
		s.leave = append(s.leave, func(e Event, inst embedded.Instance, dh bool) {
			runActions(r.leave, e, inst, dh)
		})
	}
	s.leave = append(s.leave, s.exitBehavior...)

	s.beginEnter = nil
	if s.owner != nil {
		owner := s.owner
		self := s
		s.beginEnter = append(s.beginEnter, func(e Event, inst embedded.Instance, dh bool) {
			inst.SetCurrent(owner.QualifiedName(), self.QualifiedName())
		})
	}
	s.beginEnter = append(s.beginEnter, s.entryBehavior...)

	s.endEnter = nil
	for _, r := range s.regions {
		r := r
		s.endEnter = append(s.endEnter, func(e Event, inst embedded.Instance, dh bool) {
			runActions(r.enter, e, inst, dh)
		})
	}

	s.enter = append(append([]Action{}, s.beginEnter...), s.endEnter...)
}

func compileFinalState(f *FinalState) {
	owner := f.owner
	self := f
	f.leave = nil
	f.beginEnter = []Action{func(e Event, inst embedded.Instance, dh bool) {
		inst.SetCurrent(owner.QualifiedName(), self.QualifiedName())
	}}
	f.endEnter = nil
	f.enter = append([]Action{}, f.beginEnter...)
}

func compilePseudoState(p *PseudoState) {
	p.leave = nil
	p.endEnter = nil
	if kind.IsKind(p.psKind, kind.Terminate) {
		owner := p.owner
		self := p
		p.beginEnter = []Action{func(e Event, inst embedded.Instance, dh bool) {
			inst.SetTerminated(true)
			if owner != nil {
				inst.SetCurrent(owner.QualifiedName(), self.QualifiedName())
			}
		}}
	} else {
		p.beginEnter = nil
	}
	p.enter = append([]Action{}, p.beginEnter...)
}

// compileTransition builds t's traverse pipeline (Pass B).
func compileTransition(sm *StateMachine, t *Transition) {
	switch {
	case t.target == nil:
		t.traverse = append([]Action{}, t.actions...)
		if sm.cfg.InternalTransitionsTriggerCompletion {
			source := t.source
			t.traverse = append(t.traverse, func(e Event, inst embedded.Instance, dh bool) {
				sm.tryCompletion(completionSeed(source), inst)
			})
		}
	case kind.IsKind(t.Kind(), kind.Local):
		inner := childRegionContaining(t.source, t.target)
		t.traverse = []Action{func(e Event, inst embedded.Instance, dh bool) {
			runActions(inner.leave, e, inst, dh)
		}}
		t.traverse = append(t.traverse, t.actions...)
		t.traverse = append(t.traverse, buildEntryChain(inner, t.target)...)
	default:
		lca := lowestCommonRegion(t.source, t.target)
		aS := topAncestorBelow(t.source, lca)
		t.traverse = []Action{func(e Event, inst embedded.Instance, dh bool) {
			runActions(aS.base().leave, e, inst, dh)
		}}
		t.traverse = append(t.traverse, t.actions...)
		t.traverse = append(t.traverse, buildEntryChain(lca, t.target)...)
	}
}

// childRegionContaining returns the region, owned directly by source, that
// (transitively) contains target -- used to scope a Local transition's
// leave step to the single active descendant being vacated.
func childRegionContaining(source, target Vertex) *Region {
	s := source.base()
	for _, r := range regionChain(target) {
		if r.owner.base() == s {
			return r
		}
	}
	return nil
}

// buildEntryChain returns the beginEnter/enter sequence that descends from
// region "from" down to target: every intermediate ancestor gets only its
// beginEnter (it is bypassed, not defaulted into), and target itself gets
// its full enter pipeline (which may itself descend further via its own
// regions' default resolution). If an intermediate ancestor is orthogonal,
// only the region containing the path onward is reached this way -- its
// other sibling regions are left unconfigured, per spec §4.2's literal
// "beginEnter each ancestor ... down to V's parent" (they are not on the
// path, so they are not defaulted into either).
func buildEntryChain(from *Region, target Vertex) []Action {
	chain := ancestorUpTo(target, from)
	reverseVertices(chain)
	out := make([]Action, 0, len(chain))
	for i, anc := range chain {
		anc := anc
		if i == len(chain)-1 {
			out = append(out, func(e Event, inst embedded.Instance, dh bool) {
				runActions(anc.base().enter, e, inst, dh)
			})
		} else {
			out = append(out, func(e Event, inst embedded.Instance, dh bool) {
				runActions(anc.base().beginEnter, e, inst, dh)
			})
		}
	}
	return out
}

func runActions(actions []Action, event Event, inst embedded.Instance, deepHistory bool) {
	for _, a := range actions {
		if a != nil {
			a(event, inst, deepHistory)
		}
	}
}
