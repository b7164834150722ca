// ABOUTME: Gateway route handlers
// ABOUTME: /chat without a scope replies with the select tool call instead of an answer
package gateway

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harper/radar-oficial/internal/llm"
	"github.com/harper/radar-oficial/internal/models"
	"github.com/harper/radar-oficial/internal/scope"
)

type institutionResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type chatRequest struct {
	Messages []models.Message `json:"messages"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
		"states": s.catalog.States(),
	})
}

func (s *Server) handleInstitutions(c *gin.Context) {
	result := make([]institutionResult, 0, len(s.catalog.Institutions))
	for _, inst := range s.catalog.Institutions {
		result = append(result, institutionResult{ID: inst.ID, Name: inst.Name, Slug: inst.Slug})
	}
	c.JSON(http.StatusOK, gin.H{"institutions": result})
}

func (s *Server) handleStates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"states": s.catalog.States()})
}

func (s *Server) handleChat(c *gin.Context) {
	state, ok, err := s.resolveState(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		s.metrics.selectionAsks.Inc()
		c.JSON(http.StatusOK, gin.H{
			"content": []models.ContentBlock{models.ToolCallBlock(scope.SelectJurisdictionTool)},
		})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing chat request"})
		return
	}
	question := lastUserText(req.Messages)
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat request has no user text"})
		return
	}

	agent, err := s.agents.Agent(state)
	if err != nil {
		s.logger.Error("agent unavailable", "state", state, "err", err)
		if errors.Is(err, ErrUnknownState) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process chat completion"})
		return
	}

	answer, err := agent.Complete(c.Request.Context(), question)
	if err != nil {
		s.logger.Error("failed to process chat completion", "state", state, "err", err)
		if errors.Is(err, llm.ErrCircuitOpen) {
			s.metrics.agentCalls.WithLabelValues(state, "rejected").Inc()
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent temporarily unavailable"})
			return
		}
		s.metrics.agentCalls.WithLabelValues(state, "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process chat completion"})
		return
	}

	s.metrics.agentCalls.WithLabelValues(state, "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"text": answer})
}

// resolveState maps the request's scope parameter to a state code. ok is
// false when no scope parameter is present.
func (s *Server) resolveState(c *gin.Context) (state string, ok bool, err error) {
	if raw, has := c.GetQuery(scope.JurisdictionParam); has {
		code, err := scope.ParseStateCode(raw)
		if err != nil {
			return "", false, err
		}
		if _, known := s.catalog.Agents[string(code)]; !known {
			return "", false, ErrUnknownState
		}
		return string(code), true, nil
	}
	if slug, has := c.GetQuery(scope.InstitutionParam); has {
		inst, found := s.catalog.Institution(slug)
		if !found {
			return "", false, errors.New("unknown institution " + slug)
		}
		return inst.State, true, nil
	}
	return "", false, nil
}

// lastUserText returns the text of the newest user message
func lastUserText(messages []models.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != models.RoleUser {
			continue
		}
		if text := strings.TrimSpace(messages[i].Text()); text != "" {
			return text
		}
	}
	return ""
}
