package hfsm

import (
	"fmt"

	"github.com/kairoslabs/hfsm/kind"
)

// State is a Vertex that may own zero or more child Regions.
// Categorization per spec Data Model §3:
//   - simple: 0 regions
//   - composite: ≥1 region
//   - orthogonal: ≥2 regions
type State struct {
	vertexBase
	regions       []*Region
	entryBehavior []Action
	exitBehavior  []Action
}

// NewState creates a simple or composite state under parent, which may be
// an explicit *Region (for one branch of an orthogonal state) or a
// *State/*StateMachine whose default region is lazily created.
func NewState(name string, parent regionSource) *State {
	region := parent.ownedRegion()
	model := region.model
	s := &State{
		vertexBase: vertexBase{
			element: newElement(model, kind.State, name, region),
			owner:   region,
		},
	}
	region.addChild(s)
	model.namespace[s.QualifiedName()] = s
	return s
}

func (s *State) base() *vertexBase { return &s.vertexBase }
func (s *State) ownedState() *State { return s }

// Regions returns the state's child regions in declared order.
func (s *State) Regions() []*Region { return s.regions }

// IsComposite reports whether s owns at least one region.
func (s *State) IsComposite() bool { return len(s.regions) > 0 }

// IsOrthogonal reports whether s owns two or more regions.
func (s *State) IsOrthogonal() bool { return len(s.regions) >= 2 }

// Entry appends an action to run when s is first entered (after beginEnter
// of ancestors already ran; see spec §4.2 Pass A). Returns s for chaining.
func (s *State) Entry(a Action) *State {
	s.entryBehavior = append(s.entryBehavior, a)
	s.model.clean = false
	return s
}

// Exit appends an action to run when s is left. Returns s for chaining.
func (s *State) Exit(a Action) *State {
	s.exitBehavior = append(s.exitBehavior, a)
	s.model.clean = false
	return s
}

// ownedRegion implements regionSource: it returns the state's sole region,
// lazily creating the reserved default region (spec §3) the first time a
// child vertex targets this state directly. Calling it on a state that
// already owns two or more explicitly-named regions is a construction
// error -- the caller must pick one via NewState(name, region).
func (s *State) ownedRegion() *Region {
	switch len(s.regions) {
	case 0:
		return NewRegion(s.model.cfg.DefaultRegionName, s)
	case 1:
		return s.regions[0]
	default:
		panic(fmt.Errorf("hfsm: state %s is orthogonal; specify one of its regions explicitly", s.QualifiedName()))
	}
}

// StateMachine is the root of the model tree. It embeds State so the root
// itself is a (usually composite) state; clean is false whenever the model
// has mutated since the last successful Compile.
type StateMachine struct {
	State
	clean     bool
	cfg       Config
	namespace map[string]any
}

// NewStateMachine creates the root of a model. opts configure the shared
// Config (separator, default region name, random source, logger, tracer).
func NewStateMachine(name string, opts ...ConfigOption) *StateMachine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	sm := &StateMachine{cfg: cfg, namespace: map[string]any{}}
	sm.State = State{
		vertexBase: vertexBase{
			element: element{
				kind:          kind.StateMachine,
				id:            newID(),
				name:          name,
				qualifiedName: name,
				model:         sm,
			},
		},
	}
	sm.namespace[name] = sm
	return sm
}

func (sm *StateMachine) ownedState() *State { return &sm.State }

// Config returns the state machine's engine configuration, mutable between
// compiles (e.g. to swap the Logger or Random source).
func (sm *StateMachine) Config() *Config { return &sm.cfg }

// Clean reports whether the model's compiled pipelines are known to match
// its current structure.
func (sm *StateMachine) Clean() bool { return sm.clean }

// Lookup resolves a qualified name to its element, as registered at
// construction time.
func (sm *StateMachine) Lookup(qualifiedName string) (any, bool) {
	v, ok := sm.namespace[qualifiedName]
	return v, ok
}
