// Package backend is the REST client for the food-ordering backend's admin
// notification and user endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/credentials"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/logging"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
)

const (
	pathListNotifications = "/api/notification/admin/list"
	pathCreate            = "/api/notification/create"
	pathRead              = "/api/notification/read"
	pathDeleteMultiple    = "/api/notification/delete-multiple"
	pathDeleteAll         = "/api/notification/delete-all"
	pathListUsers         = "/api/user/list"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// User is a targetable customer account.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client talks to the backend over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    credentials.Provider
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the backend at baseURL. Every request is
// authenticated with the token from session.
func New(baseURL string, session credentials.Provider, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    session,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	DeletedCount int             `json:"deletedCount"`
}

// ListNotifications returns every notification visible to the admin.
func (c *Client) ListNotifications(ctx context.Context) ([]notification.Record, error) {
	env, err := c.do(ctx, http.MethodGet, pathListNotifications, nil)
	if err != nil {
		return nil, err
	}

	records := make([]notification.Record, 0)
	if err := decodeData(env.Data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode notifications: %w", ErrTransport, err)
	}
	return records, nil
}

// CreateNotification sends a new notification. The backend fans a broadcast
// out into one record per user.
func (c *Client) CreateNotification(ctx context.Context, msg notification.Compose) error {
	_, err := c.do(ctx, http.MethodPost, pathCreate, msg.Normalize())
	return err
}

// MarkRead sets the read state of a single record.
func (c *Client) MarkRead(ctx context.Context, id string, read bool) error {
	body := struct {
		ID   string `json:"id"`
		Read bool   `json:"read"`
	}{ID: id, Read: read}

	_, err := c.do(ctx, http.MethodPost, pathRead, body)
	return err
}

// DeleteMany removes the records with the given ids and returns how many the
// backend deleted.
func (c *Client) DeleteMany(ctx context.Context, ids []string) (int, error) {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}

	env, err := c.do(ctx, http.MethodPost, pathDeleteMultiple, body)
	if err != nil {
		return 0, err
	}
	return env.DeletedCount, nil
}

// DeleteAll removes every record of a lane.
func (c *Client) DeleteAll(ctx context.Context, lane notification.Lane) (int, error) {
	body := struct {
		Type notification.Lane `json:"type"`
	}{Type: lane}

	ctx = logging.WithLane(ctx, string(lane))
	env, err := c.do(ctx, http.MethodPost, pathDeleteAll, body)
	if err != nil {
		return 0, err
	}
	return env.DeletedCount, nil
}

// ListUsers returns the accounts a notification can be targeted at.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	env, err := c.do(ctx, http.MethodGet, pathListUsers, nil)
	if err != nil {
		return nil, err
	}

	users := make([]User, 0)
	if err := decodeData(env.Data, &users); err != nil {
		return nil, fmt.Errorf("%w: decode users: %w", ErrTransport, err)
	}
	return users, nil
}

func decodeData(raw json.RawMessage, v any) error {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (envelope, error) {
	token, err := c.session.Token(ctx)
	if err != nil {
		return envelope{}, err
	}

	var reader io.Reader
	if body != nil {
		bits, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(bits)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("token", token)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Ctx(ctx).Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		if errors.Is(err, context.Canceled) {
			return envelope{}, err
		}
		return envelope{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().Ctx(ctx).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode == http.StatusUnauthorized {
		return envelope{}, ErrUnauthorized
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return envelope{}, &APIError{Status: resp.StatusCode, Message: truncate(string(data))}
		}
		return envelope{}, fmt.Errorf("%w: decode response: %w", ErrTransport, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return envelope{}, &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	return env, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
