package export_test

import (
	"strings"
	"testing"

	"github.com/kairoslabs/hfsm"
	"github.com/kairoslabs/hfsm/embedded"
	"github.com/kairoslabs/hfsm/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRendersStatesChoicesAndTransitions(t *testing.T) {
	sm := hfsm.NewStateMachine("door")
	open := hfsm.NewState("open", sm)
	closed := hfsm.NewState("closed", sm)
	ch := hfsm.NewChoice("ch", sm)
	init := hfsm.NewInitial("initial", sm)
	hfsm.NewTransition(init, ch)
	hfsm.NewTransition(ch, open).Else()
	hfsm.NewTransition(open, closed).When(func(e hfsm.Event, i embedded.Instance) bool { return false })

	require.Empty(t, hfsm.Compile(sm))

	var b strings.Builder
	require.NoError(t, export.Generate(&b, sm))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "@startuml door"))
	assert.Contains(t, out, "state door__region_open")
	assert.Contains(t, out, "state door__region_closed")
	assert.Contains(t, out, "<<choice>>")
	assert.Contains(t, out, "[*] --> door__region_ch")
	assert.Contains(t, out, "[else]")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "@enduml"))
}
