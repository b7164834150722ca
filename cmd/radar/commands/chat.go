// ABOUTME: Interactive chat REPL driven by the scope state machine
// ABOUTME: Asks for a diário when needed, then forwards every question with it
package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/radar-oficial/internal/core"
	"github.com/harper/radar-oficial/internal/models"
	"github.com/harper/radar-oficial/internal/render"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat",
		Long: `Start an interactive chat about the official gazettes.

On first contact you are asked to pick a diário; answer with its
number, value or name. The pick is saved and reused next time.
Press Ctrl+C to cancel a pending answer.

Commands:
  /welcome  list the diários again
  /scope    show the selected diário
  /quit     leave the chat`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	r := render.NewRenderer(cmd.OutOrStdout())
	r.RegisterChooser(a.conv.Presenter())
	r.RegisterInstructions(a.conv.Instructions())

	s := &chatSession{
		conv:    a.conv,
		r:       r,
		out:     cmd.OutOrStdout(),
		mounted: a.conv.Presenter().MountAsync(cmd.Context()),
		timeout: a.cfg.HTTPTimeout,
	}
	return s.run(cmd.Context(), cmd.InOrStdin())
}

// chatSession holds the REPL state for one thread
type chatSession struct {
	conv    *core.Conversation
	r       *render.Renderer
	out     io.Writer
	mounted <-chan struct{}
	timeout time.Duration
}

func (s *chatSession) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintf(s.out, "%s\n", render.Title(s.conv.Thread().Title()))
	if current := s.conv.Scope(); current != nil {
		fmt.Fprintf(s.out, "Diário: %s\n", current.Label())
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/welcome":
			s.welcome(ctx)
			continue
		case "/scope":
			s.showScope()
			continue
		}

		if s.conv.AwaitingSelection() {
			s.pick(line)
			continue
		}
		s.turn(ctx, line)
	}
}

// welcome shows the chooser again, refetching the options if the last fetch failed.
// Once a diário is chosen it only reports the choice.
func (s *chatSession) welcome(ctx context.Context) {
	if s.conv.Scope() != nil {
		s.showScope()
		return
	}
	presenter := s.conv.Presenter()
	if loaded, err := presenter.Loaded(); loaded && err != nil {
		s.mounted = presenter.MountAsync(ctx)
	}
	s.show(s.conv.Welcome())
}

func (s *chatSession) showScope() {
	if current := s.conv.Scope(); current != nil {
		fmt.Fprintf(s.out, "Diário: %s (%s)\n", current.Label(), current.Param())
		return
	}
	fmt.Fprintln(s.out, "Nenhum diário selecionado")
}

// pick applies a selection typed while the chooser is showing
func (s *chatSession) pick(input string) {
	renamed := s.conv.Thread().Renamed()
	ack, err := s.conv.Select(input)
	if errors.Is(err, core.ErrUnknownOption) {
		fmt.Fprintf(s.out, "%s\n%s\n", render.Error(err), render.Chooser(s.conv.Presenter()))
		return
	}
	if err != nil {
		fmt.Fprintf(s.out, "%s\n", render.Error(err))
		return
	}
	if !renamed {
		fmt.Fprintf(s.out, "%s\n", render.Title(s.conv.Thread().Title()))
	}
	s.show(ack)
}

// turn sends one question; Ctrl+C cancels it without leaving the chat
func (s *chatSession) turn(ctx context.Context, text string) {
	turnCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	reply, err := s.conv.Send(turnCtx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(s.out, "(cancelado)")
			return
		}
		fmt.Fprintf(s.out, "%s\n", render.Error(err))
		return
	}
	s.show(reply)
}

// show renders an assistant message, waiting for the option list if it is still loading
func (s *chatSession) show(msg models.Message) {
	for _, call := range msg.ToolCalls() {
		if call.ToolName == s.conv.Presenter().ToolName() {
			s.awaitOptions()
		}
	}
	fmt.Fprintf(s.out, "%s\n", s.r.Message(msg))
}

func (s *chatSession) awaitOptions() {
	wait := s.timeout
	if wait <= 0 {
		wait = 30 * time.Second
	}
	select {
	case <-s.mounted:
	case <-time.After(wait):
	}
}
