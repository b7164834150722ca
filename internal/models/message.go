// ABOUTME: Message and content block types exchanged with the chat runtime
// ABOUTME: A content block is either plain text or a tool invocation keyed by name
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentType discriminates content blocks
type ContentType string

const (
	ContentText     ContentType = "text"
	ContentToolCall ContentType = "tool-call"
)

// ContentBlock is a tagged union: Text is set for text blocks,
// ToolName/ToolCallID/Args for tool invocations.
type ContentBlock struct {
	Type       ContentType    `json:"type"`
	Text       string         `json:"text,omitempty"`
	ToolName   string         `json:"toolName,omitempty"`
	ToolCallID string         `json:"toolCallId,omitempty"`
	ArgsText   string         `json:"argsText,omitempty"`
	Args       map[string]any `json:"args,omitempty"`
}

// TextBlock builds a plain text block
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: ContentText, Text: text}
}

// ToolCallBlock builds a tool invocation with a fresh id and empty arguments
func ToolCallBlock(toolName string) ContentBlock {
	return ContentBlock{
		Type:       ContentToolCall,
		ToolName:   toolName,
		ToolCallID: uuid.NewString(),
		Args:       map[string]any{},
	}
}

// MarshalJSON writes only the fields of the block's variant. Tool calls always
// carry argsText and args, even when empty, as the chat runtime expects.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	if b.Type != ContentToolCall {
		return json.Marshal(struct {
			Type ContentType `json:"type"`
			Text string      `json:"text"`
		}{b.Type, b.Text})
	}
	args := b.Args
	if args == nil {
		args = map[string]any{}
	}
	return json.Marshal(struct {
		Type       ContentType    `json:"type"`
		ToolName   string         `json:"toolName"`
		ToolCallID string         `json:"toolCallId"`
		ArgsText   string         `json:"argsText"`
		Args       map[string]any `json:"args"`
	}{b.Type, b.ToolName, b.ToolCallID, b.ArgsText, args})
}

// IsToolCall reports whether the block is a tool invocation
func (b ContentBlock) IsToolCall() bool {
	return b.Type == ContentToolCall
}

// Message is one entry of a conversation thread
type Message struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Role      Role           `json:"role"`
	Content   []ContentBlock `json:"content"`
}

// NewUserMessage creates a user message with a single text block
func NewUserMessage(text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, errors.New("user message cannot be empty")
	}
	return newMessage(RoleUser, []ContentBlock{TextBlock(text)}), nil
}

// NewAssistantMessage wraps reply content in an assistant message
func NewAssistantMessage(content []ContentBlock) Message {
	return newMessage(RoleAssistant, content)
}

func newMessage(role Role, content []ContentBlock) Message {
	return Message{
		ID:        generateMessageID(),
		CreatedAt: time.Now().UTC(),
		Role:      role,
		Content:   content,
	}
}

// Text concatenates the message's text blocks
func (m Message) Text() string {
	var parts []string
	for _, block := range m.Content {
		if block.Type == ContentText && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ToolCalls returns the tool invocations in the message, in order
func (m Message) ToolCalls() []ContentBlock {
	var calls []ContentBlock
	for _, block := range m.Content {
		if block.IsToolCall() {
			calls = append(calls, block)
		}
	}
	return calls
}

// generateMessageID generates a unique message identifier
func generateMessageID() string {
	return fmt.Sprintf("msg_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
