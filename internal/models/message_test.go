// ABOUTME: Tests for message, content block and thread types
// ABOUTME: Verifies wire format, tool call ids and rename-once semantics
package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewUserMessage(t *testing.T) {
	msg, err := NewUserMessage("oi")
	if err != nil {
		t.Fatalf("NewUserMessage() error = %v", err)
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want user", msg.Role)
	}
	if msg.Text() != "oi" {
		t.Errorf("Text() = %q, want oi", msg.Text())
	}
	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID = %q, want msg_ prefix", msg.ID)
	}
}

func TestNewUserMessage_Empty(t *testing.T) {
	if _, err := NewUserMessage("   "); err == nil {
		t.Error("expected error for blank message")
	}
}

func TestToolCallBlock_FreshIDs(t *testing.T) {
	a := ToolCallBlock("select-diario-state")
	b := ToolCallBlock("select-diario-state")

	if a.ToolCallID == "" || a.ToolCallID == b.ToolCallID {
		t.Errorf("tool call ids must be unique and non-empty: %q %q", a.ToolCallID, b.ToolCallID)
	}
	if !a.IsToolCall() {
		t.Error("IsToolCall() = false")
	}
	if a.Args == nil || len(a.Args) != 0 {
		t.Errorf("Args = %v, want empty map", a.Args)
	}
}

func TestContentBlock_WireFormat(t *testing.T) {
	block := ToolCallBlock("select-diario-state")
	block.ToolCallID = "123"

	data, err := json.Marshal(block)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"type":"tool-call","toolName":"select-diario-state","toolCallId":"123","argsText":"","args":{}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	data, _ = json.Marshal(TextBlock("olá"))
	if string(data) != `{"type":"text","text":"olá"}` {
		t.Errorf("Marshal(text) = %s", data)
	}
}

func TestMessage_ToolCalls(t *testing.T) {
	msg := NewAssistantMessage([]ContentBlock{
		TextBlock("hello"),
		ToolCallBlock("institution-selected"),
	})

	calls := msg.ToolCalls()
	if len(calls) != 1 || calls[0].ToolName != "institution-selected" {
		t.Errorf("ToolCalls() = %+v", calls)
	}
	if msg.Text() != "hello" {
		t.Errorf("Text() = %q", msg.Text())
	}
}

func TestThread_RenameOnce(t *testing.T) {
	thread := NewThread()

	if thread.Title() != DefaultThreadTitle {
		t.Errorf("Title() = %q, want default", thread.Title())
	}
	if !thread.Rename("Piauí") {
		t.Fatal("first Rename() should succeed")
	}
	if thread.Rename("Maranhão") {
		t.Error("second Rename() should be ignored")
	}
	if thread.Title() != "Piauí" {
		t.Errorf("Title() = %q, want Piauí", thread.Title())
	}
	if !thread.Renamed() {
		t.Error("Renamed() = false")
	}
}

func TestThread_MessagesIsCopy(t *testing.T) {
	thread := NewThread()
	msg, _ := NewUserMessage("oi")
	thread.Append(msg)

	history := thread.Messages()
	history[0].Role = RoleAssistant

	last, ok := thread.Last()
	if !ok {
		t.Fatal("Last() ok = false")
	}
	if last.Role != RoleUser {
		t.Error("mutating Messages() result leaked into the thread")
	}
	if thread.Len() != 1 {
		t.Errorf("Len() = %d, want 1", thread.Len())
	}
}
