// Package display formats spobatchctl's demo results as a table or JSON,
// mirroring the output conventions of the library's reference CLI.
package display

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/batchwerk/spobatch/cmd/spobatchctl/config"
	"github.com/batchwerk/spobatch/internal/logging"
)

// OperationResult is one queued demo operation's outcome, ready to print.
type OperationResult struct {
	Order  int    `json:"order"`
	Family string `json:"family"`
	Method string `json:"method"`
	URL    string `json:"url"`
	Status int    `json:"status"`
	Fields string `json:"fields,omitempty"`
}

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

// DisplayResults prints the demo batch's per-operation results in the
// configured output format. startedAt is when ExecuteBatch was called,
// used only for the human-readable table heading.
func DisplayResults(results []OperationResult, startedAt time.Time, elapsed time.Duration) {
	if config.Global.Output == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			logging.Error("Failed to encode JSON: %v", err)
			fmt.Println("Error encoding JSON output")
		}
		return
	}

	fmt.Println(headingStyle.Render(fmt.Sprintf("Batch executed %s (took %s)",
		humanize.Time(startedAt), elapsed.Round(time.Millisecond))))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ORDER\tFAMILY\tMETHOD\tURL\tSTATUS\tFIELDS")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", r.Order, r.Family, r.Method, r.URL, r.Status, r.Fields)
	}
}
