// ABOUTME: One-shot question against the selected diário
// ABOUTME: Without a selection it prints the options instead of calling the service
package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/radar-oficial/internal/render"
)

// errScopeRequired is returned by ask when no diário is selected yet
var errScopeRequired = errors.New("no diário selected; run 'radar scope select <value>' first")

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question about the selected diário",
		Long: `Ask one question and print the answer.

The question is sent with the selected diário. If none is selected
yet, the available diários are listed instead and nothing is sent.

Examples:
  radar ask "Houve nomeações recentes nesta semana?"
  radar ask --format json "Quais licitações foram abertas hoje?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reply, err := a.conv.Send(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), reply)
	}

	if len(reply.ToolCalls()) > 0 {
		presenter := a.conv.Presenter()
		if err := presenter.Mount(ctx); err != nil {
			a.logger.Warn("could not list diários", "err", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", render.Chooser(presenter))
		return errScopeRequired
	}

	r := render.NewRenderer(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", r.Message(reply))
	return nil
}
