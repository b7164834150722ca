// ABOUTME: Terminal renderer for conversation messages, dispatched on tool name
// ABOUTME: Select tools show the option chooser; selected tools show the acknowledgment
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/harper/radar-oficial/internal/core"
	"github.com/harper/radar-oficial/internal/models"
	"github.com/harper/radar-oficial/internal/scope"
)

var (
	styleGray   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleBold   = lipgloss.NewStyle().Bold(true)
	styleCyan   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleGreen  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleBox    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("10")).Padding(0, 1)
)

// MarkdownRenderer formats answer text; glamour in a terminal
type MarkdownRenderer interface {
	Render(string) (string, error)
}

// OptionSource feeds the chooser; implemented by core.Presenter
type OptionSource interface {
	ToolName() string
	Options() []scope.Option
	Loaded() (bool, error)
}

// AckSource feeds the acknowledgment; implemented by core.Instructions
type AckSource interface {
	ToolName() string
	Render(toolName string) (core.Acknowledgment, error)
}

// ToolRenderer draws one tool invocation
type ToolRenderer func(call models.ContentBlock) string

// Renderer draws messages. Tool invocations are looked up by name.
type Renderer struct {
	md MarkdownRenderer

	mu    sync.RWMutex
	tools map[string]ToolRenderer
}

// NewRenderer creates a renderer for w, using glamour when w is a terminal
func NewRenderer(w io.Writer) *Renderer {
	var md MarkdownRenderer
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		lipgloss.SetColorProfile(lipgloss.NewRenderer(f).ColorProfile())
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)); err == nil {
			md = r
		}
	}
	return NewRendererWithMarkdown(md)
}

// NewRendererWithMarkdown lets tests supply a markdown renderer, or nil for plain text
func NewRendererWithMarkdown(md MarkdownRenderer) *Renderer {
	return &Renderer{md: md, tools: make(map[string]ToolRenderer)}
}

// Register binds a tool name to its renderer, replacing any previous one
func (r *Renderer) Register(toolName string, fn ToolRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[toolName] = fn
}

// RegisterChooser binds the select tool to an option list
func (r *Renderer) RegisterChooser(src OptionSource) {
	r.Register(src.ToolName(), func(models.ContentBlock) string {
		return Chooser(src)
	})
}

// RegisterInstructions binds the selected tool to the acknowledgment
func (r *Renderer) RegisterInstructions(src AckSource) {
	r.Register(src.ToolName(), func(call models.ContentBlock) string {
		ack, err := src.Render(call.ToolName)
		if err != nil {
			return styleError.Render("não foi possível carregar o diário: " + err.Error())
		}
		return Acknowledgment(ack)
	})
}

// Message draws every block of msg, one per paragraph
func (r *Renderer) Message(msg models.Message) string {
	parts := make([]string, 0, len(msg.Content))
	for _, block := range msg.Content {
		if out := r.Block(msg.Role, block); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Block draws a single content block
func (r *Renderer) Block(role models.Role, block models.ContentBlock) string {
	if block.IsToolCall() {
		r.mu.RLock()
		fn, ok := r.tools[block.ToolName]
		r.mu.RUnlock()
		if !ok {
			return styleGray.Render("[" + block.ToolName + "]")
		}
		return fn(block)
	}

	if role == models.RoleUser {
		return styleCyan.Render("você › ") + block.Text
	}
	if r.md != nil {
		if out, err := r.md.Render(block.Text); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return block.Text
}

// Title draws the thread title line
func Title(title string) string {
	return styleBold.Render("# " + title)
}

// Error draws a failed turn
func Error(err error) string {
	return styleError.Render("erro: " + err.Error())
}

// Chooser draws the numbered option list, or a placeholder while empty
func Chooser(src OptionSource) string {
	options := src.Options()
	if len(options) == 0 {
		loaded, err := src.Loaded()
		switch {
		case !loaded:
			return styleGray.Render("Carregando diários...")
		case err != nil:
			return styleError.Render("Não foi possível carregar os diários.")
		default:
			return styleGray.Render("Nenhum diário disponível.")
		}
	}

	var b strings.Builder
	b.WriteString(styleBold.Render("Selecione um diário:"))
	for i, opt := range options {
		fmt.Fprintf(&b, "\n  %s %s %s", styleNumber.Render(fmt.Sprintf("%2d.", i+1)), opt.Label, styleGray.Render("("+opt.Value+")"))
	}
	return b.String()
}

// Acknowledgment draws the boxed confirmation for a resolved scope
func Acknowledgment(ack core.Acknowledgment) string {
	lines := []string{styleGreen.Render(ack.Title)}
	if ack.Scope != "" {
		lines = append(lines, styleBold.Render(ack.Scope))
	}
	lines = append(lines, "", ack.Body, "", styleGray.Render("Exemplo: “"+ack.Example+"”"))
	return styleBox.Render(strings.Join(lines, "\n"))
}
