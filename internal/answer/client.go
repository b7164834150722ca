// ABOUTME: Client for the remote answering service
// ABOUTME: POST {base}/chat[?i=slug|?state=code] with the message history, returns reply text
package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harper/radar-oficial/internal/models"
	"github.com/harper/radar-oficial/internal/scope"
)

// ErrSelectionRequired is returned when the service answers an unscoped
// request with a selection tool call instead of text
var ErrSelectionRequired = errors.New("answering service requires a scope selection")

// StatusError reports a non-2xx answering response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("answering service returned %d: %s", e.StatusCode, e.Body)
}

// Request is the /chat request body
type Request struct {
	Messages []models.Message `json:"messages"`
}

// Response is the /chat response body. Content is only set by the unscoped reply.
type Response struct {
	Text    string                `json:"text"`
	Content []models.ContentBlock `json:"content,omitempty"`
}

// Client posts chat histories to the answering service
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an answering client for baseURL. A zero timeout means the
// caller's context is the only deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates an answering client that uses hc
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// Endpoint returns the /chat URL for param; a nil param leaves the request unscoped
func (c *Client) Endpoint(param *scope.Param) string {
	endpoint := c.baseURL + "/chat"
	if param == nil {
		return endpoint
	}
	q := url.Values{}
	q.Set(param.Key, param.Value)
	return endpoint + "?" + q.Encode()
}

// Ask sends history and returns the reply text. Cancelling ctx aborts the
// request and the returned error wraps ctx.Err(). Nothing is retried.
func (c *Client) Ask(ctx context.Context, history []models.Message, param *scope.Param) (string, error) {
	payload, err := json.Marshal(Request{Messages: history})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(param), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Surface the context error itself so callers can match on cancellation
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("chat request aborted: %w", ctxErr)
		}
		return "", fmt.Errorf("sending chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("chat request aborted: %w", ctxErr)
		}
		return "", fmt.Errorf("decoding chat response: %w", err)
	}

	if body.Text == "" && len(body.Content) > 0 {
		for _, block := range body.Content {
			if block.IsToolCall() {
				return "", fmt.Errorf("%w (%s)", ErrSelectionRequired, block.ToolName)
			}
		}
	}
	return body.Text, nil
}
