package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// outputKeyMarkers selects which deployment outputs are operator-facing.
// Matching is a case-sensitive substring check.
var outputKeyMarkers = []string{"Url", "Endpoint", "Name"}

// filterOutputs keeps only outputs whose key contains one of the markers.
func filterOutputs(outputs map[string]string) map[string]string {
	filtered := make(map[string]string, len(outputs))
	for k, v := range outputs {
		for _, marker := range outputKeyMarkers {
			if strings.Contains(k, marker) {
				filtered[k] = v
				break
			}
		}
	}
	return filtered
}

// printOutputs writes the filtered deployment outputs as "key: value" lines,
// sorted by key. An empty or nil map prints nothing.
func printOutputs(w io.Writer, outputs map[string]string) {
	if len(outputs) == 0 {
		return
	}

	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keyColor := color.New(color.FgGreen)
	for _, k := range keys {
		_, _ = keyColor.Fprint(w, k)
		fmt.Fprintf(w, ": %s\n", outputs[k])
	}
}
