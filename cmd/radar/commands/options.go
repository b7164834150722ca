// ABOUTME: Lists the diários that can be selected for the configured scope kind
// ABOUTME: Table or JSON output
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type optionRow struct {
	Number int    `json:"number"`
	Value  string `json:"value"`
	Label  string `json:"label"`
}

// NewOptionsCmd creates the options command
func NewOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List selectable diários",
		Long: `List the diários that can be selected, fetched from the directory service.

The list depends on the scope kind: states for "state", publishing
bodies for "institution".

Examples:
  radar options
  radar options --kind institution
  radar options --format json`,
		Args: cobra.NoArgs,
		RunE: runOptions,
	}

	return cmd
}

func runOptions(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	presenter := a.conv.Presenter()
	if err := presenter.Mount(cmd.Context()); err != nil {
		return err
	}

	rows := make([]optionRow, 0)
	for i, opt := range presenter.Options() {
		rows = append(rows, optionRow{Number: i + 1, Value: opt.Value, Label: opt.Label})
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), rows)
	}
	if len(rows) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No diários available\n")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "#\tVALUE\tNAME\n")
	fmt.Fprintf(w, "-\t-----\t----\n")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\n", row.Number, row.Value, truncate(row.Label, 60))
	}
	return w.Flush()
}
