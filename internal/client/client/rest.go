package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Zhanerrke588595/it-events/internal/client/models"
	"github.com/Zhanerrke588595/it-events/internal/common"
)

const maxErrorBody = 512

// RESTClient talks JSON to the backend over HTTP.
type RESTClient struct {
	baseURL string
	http    *http.Client
}

// NewRESTClient builds a client for baseURL (e.g. "http://127.0.0.1:8080").
// Every request carries "Authorization: Bearer <token>" when tokens
// returns a non-empty token. timeout bounds each request; zero disables it.
func NewRESTClient(baseURL string, tokens TokenSource, timeout time.Duration) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}

	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{next: http.DefaultTransport, tokens: tokens},
		},
	}, nil
}

// bearerTransport injects the session token into every outgoing request.
type bearerTransport struct {
	next   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil {
		return t.next.RoundTrip(req)
	}
	token, err := t.tokens.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("read session token: %w", err)
	}
	if token == "" {
		return t.next.RoundTrip(req)
	}

	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(r)
}

func (c *RESTClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return mapError(method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", common.ErrTransport, method, path, err)
	}
	return nil
}

func (c *RESTClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *RESTClient) FindUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	var users []models.User
	path := "/users?" + url.Values{"email": {email}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *RESTClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *RESTClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RESTClient) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPost, "/users", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) UpdateUser(ctx context.Context, id string, u models.User) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *RESTClient) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *RESTClient) CreateEvent(ctx context.Context, e models.Event) (*models.Event, error) {
	var out models.Event
	if err := c.do(ctx, http.MethodPost, "/events", e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) UpdateEvent(ctx context.Context, id string, e models.Event) (*models.Event, error) {
	var out models.Event
	if err := c.do(ctx, http.MethodPut, "/events/"+url.PathEscape(id), e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) PatchEvent(ctx context.Context, id string, patch map[string]any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPatch, "/events/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), nil, nil)
}

func (c *RESTClient) CreateBooking(ctx context.Context, b models.Booking) (*models.Booking, error) {
	var out models.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
