package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/racecore"
)

// ExportDOT generates Graphviz DOT source for the phase graph, filling the
// current phase. Internal transitions are drawn as self loops.
func ExportDOT(current racecore.Phase) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph RaceSession {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, p := range []racecore.Phase{racecore.PhaseCountdown, racecore.PhaseRacing, racecore.PhaseCompleting, racecore.PhaseEnded} {
		style := ""
		if p == current {
			style = " style=\"rounded,filled\" fillcolor=lightgreen"
		}
		if p == racecore.PhaseEnded {
			style += " peripheries=2"
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", p.String(), p.String(), style)
	}

	for _, t := range racecore.Transitions() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", t.From.String(), t.To.String(), t.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the transition table to JSON.
func ExportJSON() ([]byte, error) {
	return json.MarshalIndent(racecore.Transitions(), "", "  ")
}
