// ABOUTME: Tests for routing decision constants
// ABOUTME: Keeps route names stable since they appear in logs and MCP output
package models

import (
	"encoding/json"
	"testing"
)

func TestTurnRoute_Values(t *testing.T) {
	if RouteSelectionRequest != "selection_request" {
		t.Errorf("RouteSelectionRequest = %q", RouteSelectionRequest)
	}
	if RouteAnswering != "answering" {
		t.Errorf("RouteAnswering = %q", RouteAnswering)
	}
}

func TestRoutingDecision_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(RoutingDecision{Route: RouteAnswering, ScopeParam: "state=PI"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"route":"answering","scope_param":"state=PI"}` {
		t.Errorf("Marshal() = %s", data)
	}
}
