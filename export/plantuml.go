// Package export renders a compiled model as a PlantUML state diagram, for
// visual review of the same Region/State/PseudoState/Transition tree the
// engine evaluates -- not a faithful reproduction of every runtime detail
// (guard and action bodies are opaque closures, so only their presence is
// noted), but enough to sanity-check the shape of a model by eye.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/kairoslabs/hfsm"
	"github.com/kairoslabs/hfsm/kind"
)

// Generate writes a PlantUML state diagram for sm to w.
func Generate(w io.Writer, sm *hfsm.StateMachine) error {
	var b strings.Builder
	fmt.Fprintf(&b, "@startuml %s\n", idFor(sm.QualifiedName()))
	for _, r := range sm.Regions() {
		generateRegion(&b, 1, r)
	}
	fmt.Fprintln(&b, "@enduml")
	_, err := w.Write([]byte(b.String()))
	return err
}

func generateRegion(b *strings.Builder, depth int, r *hfsm.Region) {
	for _, v := range r.Vertices() {
		generateVertex(b, depth, v)
	}
	for _, v := range r.Vertices() {
		for _, t := range v.Transitions() {
			generateTransition(b, depth, t)
		}
	}
}

func generateVertex(b *strings.Builder, depth int, v hfsm.Vertex) {
	indent := strings.Repeat("  ", depth)
	id := idFor(v.QualifiedName())

	switch vv := v.(type) {
	case *hfsm.State:
		if !vv.IsComposite() {
			fmt.Fprintf(b, "%sstate %s\n", indent, id)
			break
		}
		fmt.Fprintf(b, "%sstate %s {\n", indent, id)
		for i, r := range vv.Regions() {
			if i > 0 {
				fmt.Fprintf(b, "%s--\n", strings.Repeat("  ", depth+1))
			}
			generateRegion(b, depth+1, r)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *hfsm.FinalState:
		fmt.Fprintf(b, "%sstate %s <<end>>\n", indent, id)
	case *hfsm.PseudoState:
		if tag := pseudoTag(vv.PseudoKind()); tag != "" {
			fmt.Fprintf(b, "%sstate %s %s\n", indent, id, tag)
		} else {
			fmt.Fprintf(b, "%sstate %s\n", indent, id)
		}
	}
}

func pseudoTag(k uint64) string {
	switch {
	case kind.IsKind(k, kind.Choice), kind.IsKind(k, kind.Junction):
		return "<<choice>>"
	case kind.IsKind(k, kind.ShallowHistory):
		return "<<history>>"
	case kind.IsKind(k, kind.DeepHistory):
		return "<<history*>>"
	case kind.IsKind(k, kind.Terminate):
		return "<<end>>"
	default:
		return ""
	}
}

func generateTransition(b *strings.Builder, depth int, t *hfsm.Transition) {
	indent := strings.Repeat("  ", depth)

	source := idFor(t.Source().QualifiedName())
	if kind.IsKind(t.Source().Kind(), kind.Initial) {
		source = "[*]"
	}

	var label string
	if t.GuardFn() != nil {
		label += " [guarded]"
	}
	if t.IsElse() {
		label += " [else]"
	}

	if t.Target() == nil {
		fmt.Fprintf(b, "%sstate %s%s\n", indent, source, label)
		return
	}

	target := idFor(t.Target().QualifiedName())
	if kind.IsKind(t.Target().Kind(), kind.Terminate) {
		target = "[*]"
	}
	fmt.Fprintf(b, "%s%s --> %s%s\n", indent, source, target, label)
}

func idFor(qn string) string {
	var b strings.Builder
	for _, r := range qn {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
