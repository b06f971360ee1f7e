// Package canvas is a small client for the Canvas LMS REST API. It covers
// the read-only endpoints canvas-mcp needs and decodes responses into typed
// records.
//
// The client carries a static bearer token. It does not paginate (every
// list call asks for a single page of up to PageSize items), cache, or retry.
package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jpl-au/canvas-mcp/internal/config"
)

// PageSize is the per_page value sent with every list request.
const PageSize = 100

// maxBody caps how much of a response is read (10 MB).
const maxBody = 10 << 20

// EnrollmentState selects which of the user's courses /courses returns.
type EnrollmentState string

const (
	// Active limits results to courses the user is currently enrolled in.
	Active EnrollmentState = "active"
	// All returns every course regardless of enrollment state.
	All EnrollmentState = "all"
)

// Client issues authenticated requests against one Canvas instance.
// It is safe for concurrent use.
type Client struct {
	host    string
	token   string
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client is used
// as given; the per-request timeout is applied through the request context.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBaseURL sends requests to base (e.g. an httptest server) instead of
// https://{host}. The API prefix /api/v1 is still appended.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithTimeout overrides the per-request timeout from the config.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a client for the credentials in cfg. Missing credentials are
// not an error here; every request fails with ErrConfiguration instead.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		host:    cfg.Host(),
		token:   cfg.Token(),
		baseURL: cfg.BaseURL(),
		timeout: cfg.Timeout(),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		c.baseURL = "https://" + c.host
	}
	return c
}

// Host returns the Canvas host this client talks to.
func (c *Client) Host() string {
	return c.host
}

// Configured reports whether both token and host are set.
func (c *Client) Configured() error {
	if c.token == "" {
		return fmt.Errorf("%w: missing API token (set %s or canvas.token)", ErrConfiguration, config.EnvToken)
	}
	if c.host == "" {
		return fmt.Errorf("%w: missing host (set %s or canvas.host)", ErrConfiguration, config.EnvHost)
	}
	return nil
}

// Request performs method on path (relative to /api/v1, may include a query
// string) and decodes the JSON response into out. body, when non-nil, is
// sent as JSON. out may be nil to discard the response.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	if err := c.Configured(); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

// get is Request for GET with typed output.
func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var v T
	err := c.Request(ctx, http.MethodGet, path, nil, &v)
	return v, err
}

// Courses lists the user's courses in the given enrollment state.
func (c *Client) Courses(ctx context.Context, state EnrollmentState) ([]Course, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(PageSize))
	q.Add("include[]", "term")
	if state != All {
		q.Set("enrollment_state", string(state))
	}
	return get[[]Course](ctx, c, "/courses?"+q.Encode())
}

// Course fetches a single course.
func (c *Client) Course(ctx context.Context, courseID int) (*Course, error) {
	return get[*Course](ctx, c, "/courses/"+strconv.Itoa(courseID)+"?include[]=term")
}

// Assignments lists one page of a course's assignments ordered by due date.
func (c *Client) Assignments(ctx context.Context, courseID int) ([]Assignment, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(PageSize))
	q.Set("order_by", "due_at")
	return get[[]Assignment](ctx, c, fmt.Sprintf("/courses/%d/assignments?%s", courseID, q.Encode()))
}

// Assignment fetches a single assignment.
func (c *Client) Assignment(ctx context.Context, courseID, assignmentID int) (*Assignment, error) {
	return get[*Assignment](ctx, c, fmt.Sprintf("/courses/%d/assignments/%d", courseID, assignmentID))
}

// DashboardCards lists the course tiles on the user's dashboard.
func (c *Client) DashboardCards(ctx context.Context) ([]DashboardCard, error) {
	return get[[]DashboardCard](ctx, c, "/dashboard/dashboard_cards")
}

// Self returns the user the token belongs to.
func (c *Client) Self(ctx context.Context) (*User, error) {
	return get[*User](ctx, c, "/users/self")
}
