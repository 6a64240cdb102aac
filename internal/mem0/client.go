// Package mem0 is a thin client for the mem0 hosted memory-store API.
// It covers the two operations the toolkit's memory scripts need: adding
// a memory and creating a structured export.
package mem0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the mem0 hosted platform endpoint.
const DefaultBaseURL = "https://api.mem0.ai"

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("mem0 API key not set (use --api-key or MEM0_API_KEY)")

// APIError is a non-2xx response from the mem0 API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mem0 API error: status %d: %s", e.Status, e.Body)
}

// Client talks to the mem0 hosted API.
type Client struct {
	baseURL   string
	apiKey    string
	orgID     string
	projectID string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithCredentials sets the API key, org ID, and project ID explicitly.
// Empty values fall back to the MEM0_API_KEY, MEM0_ORG_ID, and
// MEM0_PROJECT_ID environment variables.
func WithCredentials(apiKey, orgID, projectID string) Option {
	return func(c *Client) {
		c.apiKey = apiKey
		c.orgID = orgID
		c.projectID = projectID
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a mem0 client. Credentials not supplied via options
// are resolved from the environment; a missing API key is an error.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		c.apiKey = os.Getenv("MEM0_API_KEY")
	}
	if c.orgID == "" {
		c.orgID = os.Getenv("MEM0_ORG_ID")
	}
	if c.projectID == "" {
		c.projectID = os.Getenv("MEM0_PROJECT_ID")
	}

	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return c, nil
}

// Message is one conversational message submitted for memory extraction.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AddRequest holds the parameters for adding a memory.
type AddRequest struct {
	Text        string
	UserID      string
	AgentID     string
	Metadata    map[string]interface{}
	EnableGraph bool
	// Infer controls semantic inference. When false the raw text is
	// stored verbatim and deduplication is skipped.
	Infer bool
}

// Add stores a memory and returns the decoded API response. Sync mode is
// requested so the response can carry the new memory ID.
func (c *Client) Add(ctx context.Context, req AddRequest) (interface{}, error) {
	payload := map[string]interface{}{
		"messages":   []Message{{Role: "user", Content: req.Text}},
		"user_id":    req.UserID,
		"metadata":   req.Metadata,
		"async_mode": false,
	}
	if req.AgentID != "" {
		payload["agent_id"] = req.AgentID
	}
	if req.EnableGraph {
		payload["enable_graph"] = true
	}
	if !req.Infer {
		payload["infer"] = false
	}
	c.applyScope(payload)

	return c.post(ctx, "/v1/memories/", payload)
}

// GetAll lists memories matching the given filters.
func (c *Client) GetAll(ctx context.Context, filters map[string]interface{}) (interface{}, error) {
	payload := map[string]interface{}{
		"filters": filters,
	}
	c.applyScope(payload)

	return c.post(ctx, "/v2/memories/", payload)
}

// CreateExport kicks off a structured memory export. The export runs as an
// async job; the response carries the job ID.
func (c *Client) CreateExport(ctx context.Context, schema, filters map[string]interface{}) (interface{}, error) {
	payload := map[string]interface{}{
		"schema":  schema,
		"filters": filters,
	}
	c.applyScope(payload)

	return c.post(ctx, "/v1/exports/", payload)
}

// applyScope attaches org/project scoping when configured.
func (c *Client) applyScope(payload map[string]interface{}) {
	if c.orgID != "" {
		payload["org_id"] = c.orgID
	}
	if c.projectID != "" {
		payload["project_id"] = c.projectID
	}
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request to %s failed", path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(data)}
	}

	if len(data) == 0 {
		return nil, nil
	}
	var result interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}
	return result, nil
}

// ExtractMemoryID pulls the new memory's ID out of an Add response. The
// API has returned several shapes over time: a bare list of memories, a
// dict with a results list, or a dict with a top-level id.
func ExtractMemoryID(result interface{}) string {
	switch v := result.(type) {
	case []interface{}:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]interface{}); ok {
				return idField(m)
			}
		}
	case map[string]interface{}:
		if results, ok := v["results"].([]interface{}); ok && len(results) > 0 {
			m, _ := results[0].(map[string]interface{})
			return idField(m)
		}
		return idField(v)
	}
	return ""
}

// ExtractExportID pulls the export job ID out of a CreateExport response.
func ExtractExportID(result interface{}) string {
	if m, ok := result.(map[string]interface{}); ok {
		if id := stringField(m, "id"); id != "" {
			return id
		}
		return stringField(m, "export_id")
	}
	return ""
}

// ExportFilterKeys are the filter fields the export API recognizes.
var ExportFilterKeys = []string{"user_id", "agent_id", "run_id", "app_id", "memory_export_id"}

// BuildExportFilters combines a user ID and extra filters into the
// {"AND": [...]} conjunction the export API requires. An empty conjunction
// is an error: the API refuses unscoped exports.
func BuildExportFilters(userID string, extra map[string]interface{}) (map[string]interface{}, error) {
	var conditions []map[string]interface{}
	if userID != "" {
		conditions = append(conditions, map[string]interface{}{"user_id": userID})
	}
	for _, key := range ExportFilterKeys {
		if v, ok := extra[key]; ok {
			conditions = append(conditions, map[string]interface{}{key: v})
		}
	}

	if len(conditions) == 0 {
		return nil, errors.New("filters must include one of: user_id, agent_id, run_id, app_id, or memory_export_id")
	}
	return map[string]interface{}{"AND": conditions}, nil
}

func idField(m map[string]interface{}) string {
	if id := stringField(m, "id"); id != "" {
		return id
	}
	return stringField(m, "memory_id")
}

func stringField(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
