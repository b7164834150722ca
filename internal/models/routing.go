// ABOUTME: Routing decision for a conversational turn
// ABOUTME: A turn is either answered locally with a selection request or forwarded
package models

// TurnRoute represents how the orchestrator handles a turn
type TurnRoute string

const (
	// RouteSelectionRequest - No scope stored → answer locally with a select tool call
	RouteSelectionRequest TurnRoute = "selection_request"

	// RouteAnswering - Scope stored → forward history to the answering service
	RouteAnswering TurnRoute = "answering"
)

// RoutingDecision records the route taken and the scope parameter used, if any
type RoutingDecision struct {
	Route      TurnRoute `json:"route"`
	ToolName   string    `json:"tool_name,omitempty"`
	ScopeParam string    `json:"scope_param,omitempty"`
}
