// Package api is the HTTP client for the remote users service.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	oteltrace "go.opentelemetry.io/otel/trace"

	"usersadmin/internal/jsonutil"
	"usersadmin/internal/users"
)

const (
	// DefaultListPath is the users list endpoint relative to the base URL.
	DefaultListPath = "/users"
	// DefaultProfilePath is the user profile endpoint; {id} is replaced by the escaped user id.
	DefaultProfilePath = "/users/{id}"
	// DefaultTimeout bounds each request.
	DefaultTimeout = 15 * time.Second

	maxBodyBytes  = 8 << 20
	maxErrorBytes = 512
)

var (
	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("api: not found")
)

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("api: unexpected status %d: %s", e.Code, e.Body)
}

// Field names the identifier and name may arrive under, in lookup order.
var (
	IDFields   = []string{"useridId", "userId", "user_id", "id"}
	NameFields = []string{"name", "username", "userName"}
)

// Wrapper keys a list or record may be nested under.
var (
	listWrapKeys    = []string{"data", "users", "items"}
	profileWrapKeys = []string{"data", "user"}
)

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token() string
}

// Client fetches users from the remote API. Safe for concurrent use.
type Client struct {
	base        *url.URL
	listPath    string
	profilePath string
	http        *http.Client
	tokens      TokenSource
	tracer      oteltrace.Tracer
	logger      *slog.Logger
}

// Ensure Client satisfies the controller's API.
var _ users.API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithPaths overrides the list and profile endpoint paths.
func WithPaths(list, profile string) Option {
	return func(c *Client) {
		if list != "" {
			c.listPath = list
		}
		if profile != "" {
			c.profilePath = profile
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: base url %q must be http or https", baseURL)
	}
	c := &Client{
		base:        u,
		listPath:    DefaultListPath,
		profilePath: DefaultProfilePath,
		http:        &http.Client{Timeout: DefaultTimeout},
		tokens:      tokens,
		tracer:      otel.Tracer("usersadmin/api"),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchList returns the users list. A 2xx payload that is not a list (or a
// list under a data/users/items key), including an empty or non-JSON body,
// decodes to an empty list.
func (c *Client) FetchList(ctx context.Context) ([]users.Summary, error) {
	ctx, span := c.tracer.Start(ctx, "usersadmin.api.list")
	defer span.End()

	body, err := c.get(ctx, span, c.listPath)
	if err != nil {
		return nil, err
	}
	objs, err := jsonutil.ObjectArray(body, listWrapKeys...)
	if err != nil {
		span.RecordError(err)
		c.logger.Warn("users list payload not decodable", slog.Int("bytes", len(body)), slog.Any("error", err))
		return []users.Summary{}, nil
	}
	out := make([]users.Summary, 0, len(objs))
	for _, o := range objs {
		out = append(out, SummaryFromFields(o))
	}
	span.SetAttributes(attribute.Int("usersadmin.users.count", len(out)))
	return out, nil
}

// FetchProfile returns the profile record for userID.
func (c *Client) FetchProfile(ctx context.Context, userID string) (users.Detail, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, users.ErrInvalidInput
	}
	ctx, span := c.tracer.Start(ctx, "usersadmin.api.profile",
		oteltrace.WithAttributes(attribute.String("usersadmin.user.id", userID)))
	defer span.End()

	path := strings.ReplaceAll(c.profilePath, "{id}", url.PathEscape(userID))
	body, err := c.get(ctx, span, path)
	if err != nil {
		return nil, err
	}
	obj, err := jsonutil.Object(body, profileWrapKeys...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")
		return nil, fmt.Errorf("api: user %s: %w", userID, err)
	}
	return users.Detail(obj), nil
}

// SummaryFromFields builds a Summary from a decoded list element.
func SummaryFromFields(fields map[string]any) users.Summary {
	id, _ := jsonutil.FirstString(fields, IDFields...)
	name, _ := jsonutil.FirstString(fields, NameFields...)
	return users.Summary{ID: id, Name: name, Fields: fields}
}

func (c *Client) get(ctx context.Context, span oteltrace.Span, path string) ([]byte, error) {
	u := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", u.String()),
		attribute.String("usersadmin.request.id", reqID),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		c.logger.Warn("api request failed",
			slog.String("url", u.String()), slog.String("request_id", reqID), slog.Any("error", err))
		return nil, fmt.Errorf("api: GET %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("api request",
		slog.String("url", u.String()),
		slog.String("request_id", reqID),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if err := statusErr(resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		return nil, fmt.Errorf("api: GET %s: %w", u.Path, err)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, fmt.Errorf("api: read %s: %w", u.Path, err)
	}
	return body, nil
}

func statusErr(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}
