package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Zhanerrke588595/it-events/internal/client/models"
	"github.com/Zhanerrke588595/it-events/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   string
}

// newTestServer answers every request with status and body and records it.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, func() []recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		defer mu.Unlock()
		reqs = append(reqs, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   string(b),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

type tokenFunc func(ctx context.Context) (string, error)

func (f tokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

func staticToken(tok string) TokenSource {
	return tokenFunc(func(context.Context) (string, error) { return tok, nil })
}

func TestNewRESTClient_RejectsBadURL(t *testing.T) {
	_, err := NewRESTClient("ftp://example.org", nil, 0)
	require.Error(t, err)

	_, err = NewRESTClient("://", nil, 0)
	require.Error(t, err)
}

func TestRESTClient_BearerInjection(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, `[]`)

	c, err := NewRESTClient(srv.URL, staticToken("token_u1_abc"), time.Second)
	require.NoError(t, err)
	_, err = c.ListEvents(context.Background())
	require.NoError(t, err)

	anon, err := NewRESTClient(srv.URL+"/", staticToken(""), time.Second)
	require.NoError(t, err)
	_, err = anon.ListEvents(context.Background())
	require.NoError(t, err)

	require.Len(t, reqs(), 2)
	assert.Equal(t, "Bearer token_u1_abc", reqs()[0].auth)
	assert.Empty(t, reqs()[1].auth)
	assert.Equal(t, "/events", reqs()[1].path)
}

func TestRESTClient_TokenSourceError(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, `[]`)
	broken := tokenFunc(func(context.Context) (string, error) { return "", errors.New("disk gone") })

	c, err := NewRESTClient(srv.URL, broken, time.Second)
	require.NoError(t, err)

	_, err = c.ListEvents(context.Background())
	require.ErrorIs(t, err, common.ErrTransport)
	assert.Empty(t, reqs())
}

func TestRESTClient_FindUsersByEmailEncodesQuery(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, `[{"id":"1","email":"a+b@x.io","role":"user"}]`)
	c, err := NewRESTClient(srv.URL, nil, time.Second)
	require.NoError(t, err)

	users, err := c.FindUsersByEmail(context.Background(), "a+b@x.io")
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, models.RoleUser, users[0].Role)
	assert.Equal(t, "email=a%2Bb%40x.io", reqs()[0].query)
}

func TestRESTClient_CRUDMethodsAndPaths(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, `{"id":"e1","attendees":["u1"]}`)
	c, err := NewRESTClient(srv.URL, nil, time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.GetEvent(ctx, "e1")
	require.NoError(t, err)
	_, err = c.CreateEvent(ctx, models.Event{Title: "t"})
	require.NoError(t, err)
	_, err = c.UpdateEvent(ctx, "e1", models.Event{ID: "e1"})
	require.NoError(t, err)
	raw, err := c.PatchEvent(ctx, "e1", map[string]any{"attendees": []string{"u1"}})
	require.NoError(t, err)
	require.NoError(t, c.DeleteEvent(ctx, "e1"))
	_, err = c.GetUser(ctx, "u1")
	require.NoError(t, err)
	_, err = c.UpdateUser(ctx, "u1", models.User{ID: "u1"})
	require.NoError(t, err)
	_, err = c.CreateUser(ctx, models.User{Email: "x"})
	require.NoError(t, err)
	_, err = c.CreateBooking(ctx, models.Booking{EventID: "e1", UserID: "u1"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"e1","attendees":["u1"]}`, string(raw))

	want := []struct{ method, path string }{
		{http.MethodGet, "/events/e1"},
		{http.MethodPost, "/events"},
		{http.MethodPut, "/events/e1"},
		{http.MethodPatch, "/events/e1"},
		{http.MethodDelete, "/events/e1"},
		{http.MethodGet, "/users/u1"},
		{http.MethodPut, "/users/u1"},
		{http.MethodPost, "/users"},
		{http.MethodPost, "/bookings"},
	}
	require.Len(t, reqs(), len(want))
	for i, w := range want {
		assert.Equal(t, w.method, reqs()[i].method, "request %d", i)
		assert.Equal(t, w.path, reqs()[i].path, "request %d", i)
	}

	var patch map[string]any
	require.NoError(t, json.Unmarshal([]byte(reqs()[3].body), &patch))
	assert.Equal(t, []any{"u1"}, patch["attendees"])
}

func TestRESTClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, common.ErrNotFound},
		{http.StatusUnauthorized, common.ErrUnauthorized},
		{http.StatusForbidden, common.ErrUnauthorized},
		{http.StatusInternalServerError, common.ErrTransport},
		{http.StatusBadRequest, common.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, `nope`)
			c, err := NewRESTClient(srv.URL, nil, time.Second)
			require.NoError(t, err)

			_, err = c.GetEvent(context.Background(), "x")
			require.ErrorIs(t, err, tt.want)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.Code)
			assert.Contains(t, se.Error(), "nope")
		})
	}
}

func TestRESTClient_NetworkAndDecodeFailures(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `not json`)
	c, err := NewRESTClient(srv.URL, nil, time.Second)
	require.NoError(t, err)

	_, err = c.ListEvents(context.Background())
	require.ErrorIs(t, err, common.ErrTransport)

	srv.Close()
	_, err = c.ListEvents(context.Background())
	require.ErrorIs(t, err, common.ErrTransport)
}

func TestRESTClient_TimeoutIsTransportFailure(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() { close(block); srv.Close() })

	c, err := NewRESTClient(srv.URL, nil, 50*time.Millisecond)
	require.NoError(t, err)

	err = c.Ping(context.Background())
	require.ErrorIs(t, err, common.ErrTransport)
}

func TestRESTClient_CanceledContextIsNotTransport(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `[]`)
	c, err := NewRESTClient(srv.URL, nil, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.ListEvents(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, common.ErrTransport)
}
