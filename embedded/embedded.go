// Package embedded declares the structural interfaces shared between the
// model, the compiler, the evaluator and host-pluggable collaborators
// (instance storage, logging). Splitting them out from the root package
// lets plugins (Instance implementations, custom loggers) depend on
// the shapes without importing the concrete model types, mirroring how the
// teacher library separates its embedded element interfaces from hsm.go.
package embedded

// Element is satisfied by every node in a compiled model.
type Element interface {
	Kind() uint64
	Id() string
}

// NamedElement is an Element with a position in the qualified namespace.
type NamedElement interface {
	Element
	Owner() string
	QualifiedName() string
	Name() string
}

// Event is the message passed into Evaluate.
type Event interface {
	Name() string
	Data() any
}

// Instance is the pluggable per-instance active-configuration store (C5).
// A default map-based implementation lives in package instance; hosts may
// substitute their own (e.g. backed by a database row) as long as it
// honors region/vertex identity by QualifiedName.
type Instance interface {
	// SetCurrent records vertex as the last active child of region.
	SetCurrent(region string, vertex string)
	// GetCurrent returns the last active child of region, if any.
	GetCurrent(region string) (string, bool)
	// IsTerminated reports whether a Terminate pseudo-state has been entered.
	IsTerminated() bool
	// SetTerminated latches the terminated flag; never unset once true.
	SetTerminated(bool)
}

// Logger is the pluggable three-method logging sink described in the
// construction API. Replaceable globally via hfsm.SetLogger, or per engine
// via Config.Logger.
type Logger interface {
	Log(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Random is the pluggable uniform selector used by Choice resolution.
// Random(n) must return a value in [0, n).
type Random func(n uint32) uint32
