// Package taskapi implements the service.Service interface over the task service HTTP API.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

const (
	// APITimeout is the timeout for API calls when none is configured.
	APITimeout = config.DefaultTimeout

	contentTypeJSON = "application/json"
)

// Ensure Client implements service.Service.
var _ service.Service = (*Client)(nil)

// Client implements service.Service using the task service HTTP API.
// Every task call is authorized through the session guard; a 401 response
// invalidates the session before the error reaches the caller.
type Client struct {
	baseURL string
	authed  *http.Client
	anon    *http.Client
	guard   *session.Guard
	logger  *slog.Logger
	timeout time.Duration
}

// New creates a client for the server configured in cfg.
func New(cfg *config.Config, guard *session.Guard, logger *slog.Logger) *Client {
	c := NewWithHTTPClient(cfg.ServerURL, http.DefaultClient, guard, logger)
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}
	return c
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, guard *session.Guard, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		authed: &http.Client{
			Transport: &oauth2.Transport{Source: guard, Base: base},
			Timeout:   httpClient.Timeout,
		},
		anon:    httpClient,
		guard:   guard,
		logger:  logger,
		timeout: APITimeout,
	}
}

// ListAll returns every task of the current user.
func (c *Client) ListAll(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.call(ctx, http.MethodGet, "/task/all", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListFiltered returns the tasks matching f.
func (c *Client) ListFiltered(ctx context.Context, f service.Filter) ([]service.Task, error) {
	path := "/task/filter"
	if q := f.Query(); q != "" {
		path += "?" + q
	}
	var tasks []service.Task
	if err := c.call(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Sort returns the given tasks reordered by the server.
func (c *Client) Sort(ctx context.Context, ids []string, s service.Sort) ([]service.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var b strings.Builder
	b.WriteString("/task/sort?sortBy=")
	b.WriteString(url.QueryEscape(string(s.Key)))
	b.WriteString("&ascending=")
	b.WriteString(strconv.FormatBool(s.Ascending))
	for _, id := range ids {
		b.WriteString("&taskIds=")
		b.WriteString(url.QueryEscape(id))
	}

	var tasks []service.Task
	if err := c.call(ctx, http.MethodGet, b.String(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create creates a new task.
func (c *Client) Create(ctx context.Context, d service.Draft) (service.Task, error) {
	var task service.Task
	if err := c.call(ctx, http.MethodPost, "/task/add", d, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// Update replaces the editable fields of a task.
func (c *Client) Update(ctx context.Context, id string, p service.Patch) (service.Task, error) {
	var task service.Task
	if err := c.call(ctx, http.MethodPut, "/task/edit/"+url.PathEscape(id), p, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// Remove deletes a task.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/task/delete/"+url.PathEscape(id), nil, nil)
}

// Transition moves a task forward to IN_PROGRESS or DONE.
func (c *Client) Transition(ctx context.Context, id string, target service.Status) error {
	var segment string
	switch target {
	case service.StatusInProgress:
		segment = "in_progress"
	case service.StatusDone:
		segment = "done"
	default:
		return &service.ValidationError{Field: "status", Message: fmt.Sprintf("cannot move a task to %s", target)}
	}
	return c.call(ctx, http.MethodPost, "/task/"+segment+"/"+url.PathEscape(id), nil, nil)
}

// Login exchanges credentials for a token pair. It does not store them.
func (c *Client) Login(ctx context.Context, creds service.Credentials) (service.Tokens, error) {
	var tokens service.Tokens
	if err := c.send(ctx, c.anon, http.MethodPost, "/api/auth/login", creds, &tokens); err != nil {
		return service.Tokens{}, err
	}
	return tokens, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, creds service.Credentials) error {
	return c.send(ctx, c.anon, http.MethodPost, "/api/auth/register", creds, nil)
}

// call issues an authorized request. A missing credential stops the call
// before any network traffic.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	if _, err := c.guard.Require(); err != nil {
		return &service.AuthError{Reason: "no stored credential"}
	}
	err := c.send(ctx, c.authed, method, path, body, out)

	var remote *service.RemoteError
	if errors.As(err, &remote) && remote.Status == http.StatusUnauthorized {
		c.guard.Reject()
		return &service.AuthError{Reason: "session expired"}
	}
	return err
}

func (c *Client) send(ctx context.Context, hc *http.Client, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return wrapError(err)
	}
	defer resp.Body.Close()
	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if err := googleapi.CheckResponse(resp); err != nil {
		return remoteError(err, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// remoteError converts a failed response into a RemoteError carrying the body text.
func remoteError(err error, status int) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return &service.RemoteError{Status: status, Message: service.GenericFailure}
	}
	msg := strings.TrimSpace(apiErr.Body)
	if msg == "" {
		msg = service.GenericFailure
	}
	return &service.RemoteError{Status: apiErr.Code, Message: msg}
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, service.ErrUnauthenticated) {
		return &service.AuthError{Reason: "no stored credential"}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &service.NetworkError{Err: errors.New("request timed out")}
	}
	return &service.NetworkError{Err: err}
}
