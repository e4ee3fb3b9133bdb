package viz

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/qtrace/internal/pauli"
	"github.com/san-kum/qtrace/internal/session"
)

// TimelineTable renders the recorded history as an aligned table.
func TimelineTable(entries []session.Entry) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "TIME\tPATTERN\tPHASE\tWEIGHT")
	for _, e := range entries {
		weight := 0
		if p, err := pauli.Parse(e.Pattern, len(e.Pattern)); err == nil {
			weight = p.Weight()
		}
		phase := e.Phase.String()
		if phase == "" {
			phase = "+"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", e.Time, e.Pattern, phase, weight)
	}
	w.Flush()
	return b.String()
}
