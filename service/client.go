package service

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coursereg/model"
)

const (
	defaultBaseURL   = "http://localhost:5000"
	defaultUserAgent = "coursereg/1.0"
	errorSnippetN    = 8 << 10
)

// Client wraps HTTP access to the registration API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimRight(strings.TrimSpace(base), "/"); base != "" {
			c.baseURL = base
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new API client. If httpClient is nil, a default client
// without a timeout is used; a hung request stays pending until the network
// layer gives up.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sectionRequest struct {
	SectionID int    `json:"section_id"`
	Email     string `json:"email"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for the account identity. Role defaults to
// student when the server omits it.
func (c *Client) Login(ctx context.Context, email string, password string) (model.User, error) {
	var user model.User
	if err := c.postJSON(ctx, "/api/login", loginRequest{Email: email, Password: password}, &user); err != nil {
		return model.User{}, err
	}
	if user.Role == "" {
		user.Role = model.RoleStudent
	}
	return user, nil
}

// ListCourses returns every section in the catalog.
func (c *Client) ListCourses(ctx context.Context) ([]model.Section, error) {
	var sections []model.Section
	if err := c.getJSON(ctx, "/api/courses", &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// GetSchedule returns the sections the student has selected.
func (c *Client) GetSchedule(ctx context.Context, email string) ([]model.Section, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("email is required")
	}
	var sections []model.Section
	if err := c.getJSON(ctx, "/api/schedule?email="+url.QueryEscape(email), &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (c *Client) AddToSchedule(ctx context.Context, sectionID int, email string) error {
	return c.postJSON(ctx, "/api/schedule/add", sectionRequest{SectionID: sectionID, Email: email}, nil)
}

func (c *Client) RemoveFromSchedule(ctx context.Context, sectionID int, email string) error {
	return c.postJSON(ctx, "/api/schedule/remove", sectionRequest{SectionID: sectionID, Email: email}, nil)
}

// ConfirmSchedule confirms every pending section and returns the server's
// message, which may be empty.
func (c *Client) ConfirmSchedule(ctx context.Context, email string) (string, error) {
	var out messageResponse
	if err := c.postJSON(ctx, "/api/schedule/confirm", emailRequest{Email: email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// AdminEnrollments returns the full roster. The server rejects non-admins.
func (c *Client) AdminEnrollments(ctx context.Context, email string) ([]model.Enrollment, error) {
	var roster []model.Enrollment
	if err := c.getJSON(ctx, "/api/admin/enrollments?email="+url.QueryEscape(email), &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) do(ctx context.Context, method string, path string, payload []byte, out any) error {
	endpoint := c.baseURL + path

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api_request_failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer res.Body.Close()

	c.logger.Debug("api_request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", requestID),
	)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, errorSnippetN))
		return newAPIError(res, endpoint, snippet)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}
