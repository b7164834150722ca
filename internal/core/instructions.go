// ABOUTME: Acknowledgment shown once a scope is resolved
// ABOUTME: Pure read of the store, keyed on the kind's selected tool name
package core

import (
	"fmt"

	"github.com/harper/radar-oficial/internal/scope"
	"github.com/harper/radar-oficial/internal/storage"
)

const exampleQuestion = "Houve nomeações recentes nesta semana?"

// Acknowledgment is the static confirmation for the active scope
type Acknowledgment struct {
	Title   string
	Scope   string
	Body    string
	Example string
}

// String renders the acknowledgment as plain text
func (a Acknowledgment) String() string {
	s := a.Title + "\n"
	if a.Scope != "" {
		s += a.Scope + "\n"
	}
	return s + "\n" + a.Body + "\n\nExemplo: “" + a.Example + "”"
}

// Instructions renders the acknowledgment for the selected tool
type Instructions struct {
	kind   scope.Kind
	scopes ScopeReader
}

// NewInstructions creates an acknowledgment renderer for kind
func NewInstructions(kind scope.Kind, scopes ScopeReader) *Instructions {
	return &Instructions{kind: kind, scopes: scopes}
}

// ToolName is the selected tool this renderer handles
func (i *Instructions) ToolName() string {
	return i.kind.SelectedToolName()
}

// Render returns the acknowledgment for toolName. It fails for other tool
// names and when no scope is stored.
func (i *Instructions) Render(toolName string) (Acknowledgment, error) {
	if toolName != i.kind.SelectedToolName() {
		return Acknowledgment{}, fmt.Errorf("instructions do not handle tool %q", toolName)
	}
	current := i.scopes.Get()
	if current == nil {
		return Acknowledgment{}, storage.ErrNoScope
	}

	switch current.(type) {
	case scope.Institution:
		return Acknowledgment{
			Title: "📚 Diário selecionado:",
			Scope: current.Label(),
			Body: "Agora você pode enviar suas perguntas sobre este órgão. As respostas serão " +
				"geradas com base nas publicações mais recentes disponíveis neste Diário Oficial.",
			Example: exampleQuestion,
		}, nil
	default:
		return Acknowledgment{
			Title: "📚 Diário selecionado!",
			Body: fmt.Sprintf("Agora você pode enviar suas perguntas. As respostas serão geradas com base "+
				"em todas as publicações oficiais mais recentes do estado de %s.", current.Label()),
			Example: exampleQuestion,
		}, nil
	}
}
