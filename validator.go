package hfsm

import (
	"fmt"

	"github.com/kairoslabs/hfsm/embedded"
	"github.com/kairoslabs/hfsm/internal/set"
	"github.com/kairoslabs/hfsm/kind"
)

// Validate walks the model and returns every structural diagnostic found,
// having already reported each one through sm's Logger (spec §4.1).
// Compile proceeds only if the returned slice is empty.
func Validate(sm *StateMachine) []error {
	var errs []error
	log := sm.cfg.Logger
	for _, r := range sm.State.regions {
		errs = append(errs, validateRegion(r, log)...)
	}
	return errs
}

func validateRegion(r *Region, log embedded.Logger) []error {
	var errs []error
	initials := set.New[string]()

	for _, v := range r.children {
		switch vv := v.(type) {
		case *FinalState:
			if len(vv.outgoing) > 0 {
				err := fmt.Errorf("%w: %s", ErrFinalStateOutgoing, vv.QualifiedName())
				log.Error(err.Error())
				errs = append(errs, err)
			}
		case *PseudoState:
			if kind.InitialFamily(vv.psKind) {
				initials.Add(vv.QualifiedName())
			}
			switch {
			case kind.IsKind(vv.psKind, kind.Choice, kind.Junction):
				errs = append(errs, validateChoiceOrJunction(vv, log)...)
			case kind.IsKind(vv.psKind, kind.Terminate):
				if len(vv.outgoing) > 0 {
					err := fmt.Errorf("%w: %s", ErrTerminateOutgoing, vv.QualifiedName())
					log.Error(err.Error())
					errs = append(errs, err)
				}
			case kind.IsKind(vv.psKind, kind.History):
				if len(vv.outgoing) == 0 {
					err := fmt.Errorf("%w: %s", ErrHistoryNoDefault, vv.QualifiedName())
					log.Error(err.Error())
					errs = append(errs, err)
				}
			}
		case *State:
			for _, child := range vv.regions {
				errs = append(errs, validateRegion(child, log)...)
			}
		}

		for _, t := range v.base().outgoing {
			if t.isElse && !kind.IsKind(v.Kind(), kind.Choice, kind.Junction) {
				err := fmt.Errorf("%w: %s", ErrElseNotOnChoiceOrJunction, t.QualifiedName())
				log.Error(err.Error())
				errs = append(errs, err)
			}
		}
	}

	switch initials.Size() {
	case 0:
		err := fmt.Errorf("%w: %s", ErrRegionNoInitial, r.QualifiedName())
		log.Error(err.Error())
		errs = append(errs, err)
	case 1:
		for _, v := range r.children {
			if kind.InitialFamily(v.Kind()) {
				r.Initial = v
				break
			}
		}
	default:
		err := fmt.Errorf("%w: %s", ErrRegionMultipleInitial, r.QualifiedName())
		log.Error(err.Error())
		errs = append(errs, err)
	}
	return errs
}

func validateChoiceOrJunction(vv *PseudoState, log embedded.Logger) []error {
	var errs []error
	if len(vv.outgoing) == 0 {
		err := fmt.Errorf("%w: %s", ErrPseudoStateNoOutgoing, vv.QualifiedName())
		log.Error(err.Error())
		return append(errs, err)
	}
	guarded := set.New[string]()
	hasElse := false
	for _, t := range vv.outgoing {
		switch {
		case t.isElse:
			hasElse = true
		case t.guard != nil:
			guarded.Add(t.QualifiedName())
		}
	}
	if !hasElse && guarded.Size() < 2 {
		log.Warn(fmt.Sprintf(
			"hfsm: %s has no else branch and fewer than two guarded outgoing transitions (dead-end risk)",
			vv.QualifiedName(),
		))
	}
	return errs
}
