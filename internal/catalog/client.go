// In file: internal/catalog/client.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the opaque capability pair the gateway needs from the remote
// catalog: resolve a toolkit label to its actions, and execute one action.
//
// The gateway treats both operations as blocking remote calls and makes no
// assumption about how they are implemented. Tests substitute a fake.
type Client interface {
	// ListTools resolves a single toolkit label for the given user and returns
	// every action the toolkit exposes. An unknown label may return an error
	// or an empty slice; callers must treat both as a failed probe.
	ListTools(ctx context.Context, userID, toolkit string) ([]RawAction, error)

	// Execute invokes one action by its stable identity. The returned value
	// is the provider's raw, unshaped payload: it may be a decoded JSON
	// object, a list, or a plain string, and carries no schema guarantee.
	Execute(ctx context.Context, req ExecuteRequest) (any, error)
}

// HTTPClient talks to the catalog's REST API. It holds its own configured
// HTTP client for making robust external API calls.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Statically verify that HTTPClient implements the Client interface.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a catalog client for the given API endpoint.
// It requires an API key and initializes a dedicated HTTP client with a
// timeout, which is crucial for preventing hung requests to the external
// service in a production environment.
func NewHTTPClient(baseURL, apiKey string) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, errors.New("catalog base URL cannot be empty")
	}
	if apiKey == "" {
		return nil, errors.New("catalog API key cannot be empty")
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // Remote actions can be slow; keep a generous ceiling.
		},
	}, nil
}

// ListTools fetches the action list for one toolkit label.
func (c *HTTPClient) ListTools(ctx context.Context, userID, toolkit string) ([]RawAction, error) {
	endpoint, err := url.Parse(c.baseURL + "/tools")
	if err != nil {
		return nil, fmt.Errorf("invalid catalog URL: %w", err)
	}
	params := url.Values{}
	params.Add("user_id", userID)
	params.Add("toolkits", toolkit)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned non-200 status for toolkit '%s': %d", toolkit, resp.StatusCode)
	}

	var apiResp struct {
		Items []RawAction `json:"items"`
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON response: %w", err)
	}

	// Stamp the owning toolkit label on each action so downstream diagnostics
	// can report which probe surfaced it.
	for i := range apiResp.Items {
		if apiResp.Items[i].Toolkit == "" {
			apiResp.Items[i].Toolkit = toolkit
		}
	}
	return apiResp.Items, nil
}

// Execute invokes one remote action and returns its raw, unshaped payload.
func (c *HTTPClient) Execute(ctx context.Context, execReq ExecuteRequest) (any, error) {
	payload, err := json.Marshal(execReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode execute request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/tools/execute/%s", c.baseURL, url.PathEscape(execReq.Slug))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create execute request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call catalog execute: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read execute response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		// Surface the provider's error body; it often names the offending
		// fields, which the feedback synthesizer mines for hints.
		return nil, fmt.Errorf("action '%s' returned status %d: %s", execReq.Slug, resp.StatusCode, truncate(string(body), 300))
	}

	// The payload has no schema guarantee. Decode into a generic value and
	// let the normalizer decide what shape it actually has.
	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return string(body), nil
	}
	return result, nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("User-Agent", "ToolBridge-Agent/1.0")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
