// Package client is a typed Go client for the resource management API.
package client

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
	"sync"
	"time"

	"github.com/yukikurage/resource-management-api/internal/dto"
)

const defaultTimeout = 30 * time.Second

// ErrSessionExpired is returned by protected calls when there is no valid session.
var ErrSessionExpired = errors.New("session expired, please log in again")

// Response payloads.
type (
	User             = dto.UserDTO
	SignupResult     = dto.SignupResponse
	Project          = dto.ProjectDTO
	Assignment       = dto.AssignmentDTO
	EngineerCapacity = dto.CapacityDTO
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Client calls the API on behalf of at most one session.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time

	mu      sync.RWMutex
	session *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession starts the client with a previously saved session.
func WithSession(s Session) Option {
	return func(c *Client) { c.session = &s }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8000/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session returns a copy of the current session, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// SetSession replaces the current session.
func (c *Client) SetSession(s Session) {
	c.mu.Lock()
	c.session = &s
	c.mu.Unlock()
}

// ClearSession forgets the current session.
func (c *Client) ClearSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// SignupInput is the body of a signup request.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Signup registers a new account. It does not log in.
func (c *Client) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	var out SignupResult
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, input, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the resulting session on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, false, &out); err != nil {
		return nil, err
	}

	expiresAt, err := tokenExpiry(out.Token)
	if err != nil {
		return nil, err
	}
	session := Session{
		Token:        out.Token,
		UserID:       out.UserID,
		Name:         out.Name,
		Role:         string(out.Role),
		ProfileImage: out.ProfileImage,
		ExpiresAt:    expiresAt,
	}
	c.SetSession(session)
	return &session, nil
}

// Logout tells the server and drops the local session either way.
func (c *Client) Logout(ctx context.Context) error {
	defer c.ClearSession()
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, false, nil)
}

// Profile returns the logged-in user.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileUpdate is a sparse profile change; nil fields are left alone.
type ProfileUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
	Seniority   *string   `json:"seniority,omitempty"`
	MaxCapacity *int      `json:"maxCapacity,omitempty"`
	Department  *string   `json:"department,omitempty"`
}

// UpdateProfile applies a partial update to the logged-in user.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, update, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Engineers lists every engineer.
func (c *Client) Engineers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/engineers", nil, nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Capacity returns an engineer's capacity, restricted to assignments active
// on asOf when it is set.
func (c *Client) Capacity(ctx context.Context, engineerID string, asOf *time.Time) (*EngineerCapacity, error) {
	var query url.Values
	if asOf != nil {
		query = url.Values{"asOf": {asOf.UTC().Format(time.DateOnly)}}
	}

	var out EngineerCapacity
	if err := c.do(ctx, http.MethodGet, "/engineers/"+url.PathEscape(engineerID)+"/capacity", query, nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Projects lists every project. An empty list is a 404 APIError.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Project fetches one project.
func (c *Client) Project(ctx context.Context, id string) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProjectInput is the body of a project creation.
type ProjectInput struct {
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	RequiredSkills []string   `json:"requiredSkills,omitempty"`
	TeamSize       *int       `json:"teamSize,omitempty"`
	Status         *string    `json:"status,omitempty"`
	ManagerID      string     `json:"managerId"`
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodPost, "/projects", nil, input, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignmentFilter narrows Assignments; empty fields match everything.
type AssignmentFilter struct {
	EngineerID string
	ProjectID  string
}

// Assignments lists assignments with engineer and project expanded.
func (c *Client) Assignments(ctx context.Context, filter AssignmentFilter) ([]Assignment, error) {
	query := url.Values{}
	if filter.EngineerID != "" {
		query.Set("engineerId", filter.EngineerID)
	}
	if filter.ProjectID != "" {
		query.Set("projectId", filter.ProjectID)
	}

	var out []Assignment
	if err := c.do(ctx, http.MethodGet, "/assignments", query, nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Assignment fetches one expanded assignment.
func (c *Client) Assignment(ctx context.Context, id string) (*Assignment, error) {
	var out Assignment
	if err := c.do(ctx, http.MethodGet, "/assignments/"+url.PathEscape(id), nil, nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignmentInput is the body of an assignment creation.
type AssignmentInput struct {
	EngineerID           string     `json:"engineerId"`
	ProjectID            string     `json:"projectId"`
	AllocationPercentage int        `json:"allocationPercentage"`
	StartDate            time.Time  `json:"startDate"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	Role                 string     `json:"role"`
}

// CreateAssignment creates an assignment.
func (c *Client) CreateAssignment(ctx context.Context, input AssignmentInput) (*Assignment, error) {
	var out Assignment
	if err := c.do(ctx, http.MethodPost, "/assignments", nil, input, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignmentPatch is a sparse assignment change. Set ClearEndDate to make
// the assignment open-ended.
type AssignmentPatch struct {
	EngineerID           *string    `json:"engineerId,omitempty"`
	ProjectID            *string    `json:"projectId,omitempty"`
	AllocationPercentage *int       `json:"allocationPercentage,omitempty"`
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	ClearEndDate         bool       `json:"-"`
	Role                 *string    `json:"role,omitempty"`
}

// MarshalJSON sends an empty endDate when ClearEndDate is set.
func (p AssignmentPatch) MarshalJSON() ([]byte, error) {
	type plain AssignmentPatch
	if !p.ClearEndDate {
		return json.Marshal(plain(p))
	}
	return json.Marshal(struct {
		plain
		EndDate string `json:"endDate"`
	}{plain: plain(p)})
}

// UpdateAssignment applies a partial update to an assignment.
func (c *Client) UpdateAssignment(ctx context.Context, id string, patch AssignmentPatch) (*Assignment, error) {
	var out Assignment
	if err := c.do(ctx, http.MethodPatch, "/assignments/"+url.PathEscape(id), nil, patch, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAssignment removes an assignment.
func (c *Client) DeleteAssignment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/assignments/"+url.PathEscape(id), nil, nil, true, nil)
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, authenticated bool, out any) error {
	var token string
	if authenticated {
		session := c.Session()
		if !session.Valid(c.now()) {
			c.ClearSession()
			return ErrSessionExpired
		}
		token = session.Token
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized && authenticated {
			c.ClearSession()
		}
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}
