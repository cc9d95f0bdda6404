package hfsm

import (
	"github.com/google/uuid"
	"github.com/kairoslabs/hfsm/embedded"
)

// Action is an entry, exit or transition-effect behavior. deepHistory is
// true when the enter half of a pipeline is running as part of a deep
// history restoration, so user code can distinguish a fresh entry from a
// restored one. See spec §6.
type Action func(event Event, instance embedded.Instance, deepHistory bool)

// Guard evaluates whether a transition is enabled for the given event and
// instance. A nil Guard is treated as "always true".
type Guard func(event Event, instance embedded.Instance) bool

// Event is the message handed to Evaluate.
type Event = embedded.Event

type event struct {
	name string
	data any
}

// NewEvent builds an Event carrying an optional payload.
func NewEvent(name string, data ...any) Event {
	e := event{name: name}
	if len(data) > 0 {
		e.data = data[0]
	}
	return e
}

func (e event) Name() string { return e.name }
func (e event) Data() any    { return e.data }

// element is the embedded base for every model node: it carries identity
// (Kind, Id), qualified naming and the back-pointer to the owning model
// needed to register into its namespace and mark it dirty on mutation.
type element struct {
	kind          uint64
	id            string
	name          string
	qualifiedName string
	ownerQN       string
	model         *StateMachine
}

func newID() string { return uuid.NewString() }

func newElement(model *StateMachine, k uint64, name string, parent embedded.NamedElement) element {
	qn := name
	ownerQN := ""
	if parent != nil {
		ownerQN = parent.QualifiedName()
		qn = ownerQN + model.cfg.NamespaceSeparator + name
	}
	return element{
		kind:          k,
		id:            uuid.NewString(),
		name:          name,
		qualifiedName: qn,
		ownerQN:       ownerQN,
		model:         model,
	}
}

func (e *element) Kind() uint64          { return e.kind }
func (e *element) Id() string            { return e.id }
func (e *element) Name() string          { return e.name }
func (e *element) QualifiedName() string { return e.qualifiedName }
func (e *element) Owner() string         { return e.ownerQN }
