package hfsm_test

import (
	"testing"

	"github.com/kairoslabs/hfsm"
	"github.com/kairoslabs/hfsm/embedded"
	"github.com/kairoslabs/hfsm/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(trace *[]string, label string) hfsm.Action {
	return func(event hfsm.Event, inst embedded.Instance, deepHistory bool) {
		*trace = append(*trace, label)
	}
}

func onEvent(name string) hfsm.Guard {
	return func(event hfsm.Event, inst embedded.Instance) bool { return event.Name() == name }
}

func TestEvaluateSimpleTransition(t *testing.T) {
	sm := hfsm.NewStateMachine("m")
	var trace []string

	a := hfsm.NewState("a", sm).Entry(record(&trace, "a.entry")).Exit(record(&trace, "a.exit"))
	b := hfsm.NewState("b", sm).Entry(record(&trace, "b.entry")).Exit(record(&trace, "b.exit"))
	init := hfsm.NewInitial("initial", sm)
	hfsm.NewTransition(init, a)
	hfsm.NewTransition(a, b).When(onEvent("go"))

	inst := instance.New()
	require.NoError(t, hfsm.Initialise(sm, inst))
	assert.Equal(t, []string{"a.entry"}, trace)

	trace = nil
	assert.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("go")))
	assert.Equal(t, []string{"a.exit", "b.entry"}, trace)

	cur, ok := inst.GetCurrent(a.OwnerRegion().QualifiedName())
	require.True(t, ok)
	assert.Equal(t, b.QualifiedName(), cur)
}

func TestEvaluateCompletionFromSimpleStateFiresOnEntry(t *testing.T) {
	sm := hfsm.NewStateMachine("m")
	var trace []string

	a := hfsm.NewState("a", sm).Entry(record(&trace, "a.entry"))
	b := hfsm.NewState("b", sm).Entry(record(&trace, "b.entry"))
	init := hfsm.NewInitial("initial", sm)
	hfsm.NewTransition(init, a)
	hfsm.NewTransition(a, b) // unguarded: a completion transition

	inst := instance.New()
	require.NoError(t, hfsm.Initialise(sm, inst))

	assert.Equal(t, []string{"a.entry", "b.entry"}, trace,
		"a is a simple state, so it is complete the instant it is entered and its completion transition must fire immediately")

	cur, ok := inst.GetCurrent(a.OwnerRegion().QualifiedName())
	require.True(t, ok)
	assert.Equal(t, b.QualifiedName(), cur)
}

func TestEvaluateGuardedJunction(t *testing.T) {
	sm := hfsm.NewStateMachine("m")

	a := hfsm.NewState("a", sm)
	bigState := hfsm.NewState("big", sm)
	smallState := hfsm.NewState("small", sm)
	j := hfsm.NewJunction("j", sm)
	init := hfsm.NewInitial("initial", sm)
	hfsm.NewTransition(init, a)
	hfsm.NewTransition(a, j).When(onEvent("go"))
	hfsm.NewTransition(j, bigState).When(func(e hfsm.Event, i embedded.Instance) bool {
		v, _ := e.Data().(string)
		return v == "big"
	})
	hfsm.NewTransition(j, smallState).Else()

	inst := instance.New()
	require.NoError(t, hfsm.Initialise(sm, inst))
	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("go", "big")))

	cur, _ := inst.GetCurrent(a.OwnerRegion().QualifiedName())
	assert.Equal(t, bigState.QualifiedName(), cur)
}

func TestEvaluateJunctionElseFallback(t *testing.T) {
	sm := hfsm.NewStateMachine("m")

	a := hfsm.NewState("a", sm)
	bigState := hfsm.NewState("big", sm)
	smallState := hfsm.NewState("small", sm)
	j := hfsm.NewJunction("j", sm)
	init := hfsm.NewInitial("initial", sm)
	hfsm.NewTransition(init, a)
	hfsm.NewTransition(a, j).When(onEvent("go"))
	hfsm.NewTransition(j, bigState).When(func(e hfsm.Event, i embedded.Instance) bool {
		v, _ := e.Data().(string)
		return v == "big"
	})
	hfsm.NewTransition(j, smallState).Else()

	inst := instance.New()
	require.NoError(t, hfsm.Initialise(sm, inst))
	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("go", "small")))

	cur, _ := inst.GetCurrent(a.OwnerRegion().QualifiedName())
	assert.Equal(t, smallState.QualifiedName(), cur)
}

func TestEvaluateChoicePicksAmongMultipleEnabledViaRandom(t *testing.T) {
	sm := hfsm.NewStateMachine("m", hfsm.WithRandom(func(n uint32) uint32 { return 1 }))

	a := hfsm.NewState("a", sm)
	x := hfsm.NewState("x", sm)
	y := hfsm.NewState("y", sm)
	ch := hfsm.NewChoice("ch", sm)
	init := hfsm.NewInitial("initial", sm)
	hfsm.NewTransition(init, a)
	hfsm.NewTransition(a, ch).When(onEvent("go"))
	alwaysTrue := func(e hfsm.Event, i embedded.Instance) bool { return true }
	hfsm.NewTransition(ch, x).When(alwaysTrue)
	hfsm.NewTransition(ch, y).When(alwaysTrue)

	inst := instance.New()
	require.NoError(t, hfsm.Initialise(sm, inst))
	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("go")))

	cur, _ := inst.GetCurrent(a.OwnerRegion().QualifiedName())
	assert.Equal(t, y.QualifiedName(), cur, "Random stub returning index 1 should select the second enabled branch")
}

func TestEvaluateDeepHistoryRestoresNestedDescendant(t *testing.T) {
	sm := hfsm.NewStateMachine("m")
	var trace []string

	p := hfsm.NewState("p", sm).Entry(record(&trace, "p.entry")).Exit(record(&trace, "p.exit"))
	q := hfsm.NewState("q", sm).Entry(record(&trace, "q.entry"))

	dh := hfsm.NewDeepHistory("dh", p)
	c1 := hfsm.NewState("c1", p).Entry(record(&trace, "c1.entry")).Exit(record(&trace, "c1.exit"))
	hfsm.NewTransition(dh, c1)

	c1init := hfsm.NewInitial("c1.initial", c1)
	c1a := hfsm.NewState("c1a", c1).Entry(record(&trace, "c1a.entry"))
	c1b := hfsm.NewState("c1b", c1).Entry(record(&trace, "c1b.entry"))
	hfsm.NewTransition(c1init, c1a)
	hfsm.NewTransition(c1a, c1b).When(onEvent("descend"))

	rootInit := hfsm.NewInitial("initial", sm)
	hfsm.NewTransition(rootInit, p)
	hfsm.NewTransition(p, q).When(onEvent("leave"))
	hfsm.NewTransition(q, p).When(onEvent("back"))

	inst := instance.New()
	require.NoError(t, hfsm.Initialise(sm, inst))
	assert.Equal(t, []string{"p.entry", "c1.entry", "c1a.entry"}, trace)

	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("descend")))
	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("leave")))

	trace = nil
	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("back")))
	assert.Equal(t, []string{"p.entry", "c1.entry", "c1b.entry"}, trace,
		"deep history must restore c1b directly, skipping c1a's normal initial descent")
}

func TestEvaluateOrthogonalCompletion(t *testing.T) {
	sm := hfsm.NewStateMachine("m")

	o := hfsm.NewState("o", sm)
	r1 := hfsm.NewRegion("r1", o)
	r2 := hfsm.NewRegion("r2", o)

	x1 := hfsm.NewState("x1", r1)
	f1 := hfsm.NewFinalState("f1", r1)
	r1init := hfsm.NewInitial("r1.initial", r1)
	hfsm.NewTransition(r1init, x1)
	hfsm.NewTransition(x1, f1).When(onEvent("done1"))

	x2 := hfsm.NewState("x2", r2)
	f2 := hfsm.NewFinalState("f2", r2)
	r2init := hfsm.NewInitial("r2.initial", r2)
	hfsm.NewTransition(r2init, x2)
	hfsm.NewTransition(x2, f2).When(onEvent("done2"))

	z := hfsm.NewState("z", sm)
	hfsm.NewTransition(o, z) // unguarded: fires only once o is complete

	rootInit := hfsm.NewInitial("initial", sm)
	hfsm.NewTransition(rootInit, o)

	inst := instance.New()
	require.NoError(t, hfsm.Initialise(sm, inst))

	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("done1")))
	cur, _ := inst.GetCurrent(o.OwnerRegion().QualifiedName())
	assert.Equal(t, o.QualifiedName(), cur, "o must not complete until both regions reach final")

	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("done2")))
	cur, _ = inst.GetCurrent(o.OwnerRegion().QualifiedName())
	assert.Equal(t, z.QualifiedName(), cur, "o completes once both regions are final, firing its completion transition")
}

func TestEvaluateInternalLocalExternalScoping(t *testing.T) {
	sm := hfsm.NewStateMachine("m")
	var trace []string

	s := hfsm.NewState("s", sm).Entry(record(&trace, "s.entry")).Exit(record(&trace, "s.exit"))
	inner := hfsm.NewState("inner", s).Entry(record(&trace, "inner.entry")).Exit(record(&trace, "inner.exit"))
	t3 := hfsm.NewState("t3", sm).Entry(record(&trace, "t3.entry"))
	sInit := hfsm.NewInitial("s.initial", s)
	hfsm.NewTransition(sInit, inner)

	hfsm.NewTransition(s, nil).When(onEvent("tick")).Effect(record(&trace, "tick.effect"))
	hfsm.NewTransition(s, inner, hfsm.Local).When(onEvent("drop")).Effect(record(&trace, "drop.effect"))
	hfsm.NewTransition(s, t3).When(onEvent("jump"))

	rootInit := hfsm.NewInitial("initial", sm)
	hfsm.NewTransition(rootInit, s)

	inst := instance.New()
	require.NoError(t, hfsm.Initialise(sm, inst))
	trace = nil

	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("tick")))
	assert.Equal(t, []string{"tick.effect"}, trace, "an internal transition never leaves or re-enters its source")

	trace = nil
	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("drop")))
	assert.Equal(t, []string{"inner.exit", "drop.effect", "inner.entry"}, trace,
		"a local transition re-enters only the descendant, never the ancestor source")

	trace = nil
	require.True(t, hfsm.Evaluate(sm, inst, hfsm.NewEvent("jump")))
	assert.Equal(t, []string{"inner.exit", "s.exit", "t3.entry"}, trace,
		"an external transition exits the whole source, descendants first")
}
