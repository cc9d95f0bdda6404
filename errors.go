package hfsm

import "errors"

// Structural (compile-time) error sentinels, wrapped with context via
// fmt.Errorf("...: %w", ...) and reported through the Validator's Logger
// before compile aborts. See spec §7.
var (
	ErrRegionNoInitial           = errors.New("hfsm: region has no initial-family child")
	ErrRegionMultipleInitial     = errors.New("hfsm: region has more than one initial-family child")
	ErrFinalStateOutgoing        = errors.New("hfsm: final state has outgoing transitions")
	ErrPseudoStateNoOutgoing     = errors.New("hfsm: choice/junction has no outgoing transitions")
	ErrHistoryNoDefault          = errors.New("hfsm: history pseudo-state has no resolvable default target")
	ErrTerminateOutgoing         = errors.New("hfsm: terminate pseudo-state has outgoing transitions")
	ErrElseNotOnChoiceOrJunction = errors.New("hfsm: else() transition source is not a choice or junction")

	// ErrValidationFailed is returned by Initialise when compiling the
	// model reported one or more structural errors (Compile itself returns
	// those errors directly and records this sentinel on its span); compile
	// does not proceed.
	ErrValidationFailed = errors.New("hfsm: model failed validation")
)

// Evaluation (runtime) error sentinels -- logged via the Logger's Error
// method, never returned to the caller of Evaluate (spec §7 taxonomy #2).
var (
	ErrChoiceIllFormed   = errors.New("hfsm: choice has no enabled transition")
	ErrJunctionIllFormed = errors.New("hfsm: junction has zero or multiple enabled non-else transitions")
)
