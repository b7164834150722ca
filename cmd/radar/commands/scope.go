// ABOUTME: Scope commands: show the saved diário or select a new one
// ABOUTME: Selection persists immediately and survives restarts
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/radar-oficial/internal/render"
)

type scopeView struct {
	Kind     string `json:"kind"`
	Resolved bool   `json:"resolved"`
	Value    string `json:"value,omitempty"`
	Label    string `json:"label,omitempty"`
	Param    string `json:"param,omitempty"`
}

// NewScopeCmd creates the scope command group
func NewScopeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scope",
		Short: "Show or change the selected diário",
		Long: `Show or change the diário questions are answered from.

The selection is saved in the configured store (charm, sqlite or
memory) under the key for the scope kind, so it is reused by later
chat, ask and mcp sessions.`,
	}

	cmd.AddCommand(newScopeShowCmd())
	cmd.AddCommand(newScopeSelectCmd())

	return cmd
}

func newScopeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the selected diário",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			view := scopeView{Kind: a.store.Kind().Name()}
			if current := a.conv.Scope(); current != nil {
				param := current.Param()
				view.Resolved = true
				view.Value = param.Value
				view.Label = current.Label()
				view.Param = param.String()
			}

			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), view)
			}
			if !view.Resolved {
				fmt.Fprintf(cmd.OutOrStdout(), "No diário selected (%s)\n", view.Kind)
				fmt.Fprintf(cmd.OutOrStdout(), "Run 'radar options' to list them and 'radar scope select <value>' to pick one\n")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Diário: %s\n", view.Label)
			fmt.Fprintf(cmd.OutOrStdout(), "Kind:   %s\n", view.Kind)
			fmt.Fprintf(cmd.OutOrStdout(), "Param:  %s\n", view.Param)
			return nil
		},
	}
}

func newScopeSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <value>",
		Short: "Select a diário by value, number or name",
		Long: `Select the diário later questions are answered from.

Examples:
  radar scope select PI
  radar scope select 3
  radar --kind institution scope select governo-pi`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.conv.Presenter().Mount(cmd.Context()); err != nil {
				return err
			}
			ack, err := a.conv.Select(args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), ack)
			}
			text, err := a.conv.Instructions().Render(ack.ToolCalls()[0].ToolName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", render.Acknowledgment(text))
			return nil
		},
	}
}
