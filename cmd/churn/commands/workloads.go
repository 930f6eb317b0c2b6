package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-churn/pkg/workload"
)

// workloadsCmd lists the workloads
var workloadsCmd = &cobra.Command{
	Use:   "workloads",
	Short: "List workloads, their operations and weights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderWorkloads(cmd.OutOrStdout(), workload.List())
	},
}

func init() {
	rootCmd.AddCommand(workloadsCmd)
}

func renderWorkloads(w io.Writer, workloads []workload.Workload) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Workload", "Target", "Operation", "Weight", "Delete prob", "Table"})

	for _, wl := range workloads {
		total := 0.0
		for _, weight := range wl.Weights {
			total += weight
		}
		for i, op := range wl.Ops {
			meta, err := op.Entity.Table()
			if err != nil {
				return err
			}
			prob := ""
			if op.Action == workload.ActionDelete {
				p := wl.ChildDeleteProb
				if wl.IsParent(op.Entity) {
					p = wl.ParentDeleteProb
				}
				prob = fmt.Sprintf("%.2f", p)
			}
			t.AppendRow(table.Row{wl.Name, wl.Target, op.String(), fmt.Sprintf("%.0f%%", 100*wl.Weights[i]/total), prob, meta.Name})
		}
		t.AppendSeparator()
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
