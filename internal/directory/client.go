// ABOUTME: Read-only client for the directory of selectable scopes
// ABOUTME: GET {base}/institutions and GET {base}/states, no caching, no retries
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harper/radar-oficial/internal/scope"
)

// StatusError reports a non-2xx directory response
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("directory %s returned %d: %s", e.Path, e.StatusCode, e.Body)
}

// Client fetches institutions and states from the directory service
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a directory client for baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a directory client that uses hc
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

type institutionsResponse struct {
	Institutions []scope.Institution `json:"institutions"`
}

type statesResponse struct {
	States []string `json:"states"`
}

// Institutions lists every selectable institution
func (c *Client) Institutions(ctx context.Context) ([]scope.Institution, error) {
	var body institutionsResponse
	if err := c.get(ctx, "/institutions", &body); err != nil {
		return nil, err
	}
	return body.Institutions, nil
}

// States lists every selectable state code, upper-cased. Validation against the
// state table is left to the caller.
func (c *Client) States(ctx context.Context) ([]scope.StateCode, error) {
	var body statesResponse
	if err := c.get(ctx, "/states", &body); err != nil {
		return nil, err
	}
	codes := make([]scope.StateCode, 0, len(body.States))
	for _, s := range body.States {
		codes = append(codes, scope.StateCode(strings.ToUpper(strings.TrimSpace(s))))
	}
	return codes, nil
}

func (c *Client) get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
