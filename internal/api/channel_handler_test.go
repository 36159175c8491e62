package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/eventhub/internal/api/shared"
	"github.com/phrazzld/eventhub/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter mounts the channel routes the same way the server does.
func newTestRouter(registry ChannelRegistry) http.Handler {
	handler := NewChannelHandler(registry, testLogger())
	r := chi.NewRouter()
	r.Route("/api", handler.Routes)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestChannelHandler_GetListenerCount(t *testing.T) {
	registry := events.NewRegistry(testLogger())
	noop := func(ctx context.Context, args ...any) error { return nil }
	registry.On("x", noop)
	registry.On("x", noop)

	router := newTestRouter(registry)

	t.Run("registered channel", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/channels/x/listeners", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp ChannelResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, ChannelResponse{Name: "x", ListenerCount: 2}, resp)
	})

	t.Run("unknown channel reports zero", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/api/channels/y/listeners", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp ChannelResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.ListenerCount)
	})
}

func TestChannelHandler_ListChannels(t *testing.T) {
	registry := events.NewRegistry(testLogger())
	noop := func(ctx context.Context, args ...any) error { return nil }
	registry.On("orders", noop)
	registry.On("audit", noop)
	registry.On("orders", noop)

	rr := doRequest(t, newTestRouter(registry), http.MethodGet, "/api/channels", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp ChannelListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []ChannelResponse{
		{Name: "audit", ListenerCount: 1},
		{Name: "orders", ListenerCount: 2},
	}, resp.Channels)
}

func TestChannelHandler_Emit(t *testing.T) {
	t.Run("invokes listeners with decoded args", func(t *testing.T) {
		registry := events.NewRegistry(testLogger())
		var got []any
		registry.On("myevent1", func(ctx context.Context, args ...any) error {
			got = args
			return nil
		})

		rr := doRequest(t, newTestRouter(registry), http.MethodPost,
			"/api/channels/myevent1/emit", `{"args":["hello",24]}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp EmitResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, EmitResponse{Name: "myevent1", Invoked: true}, resp)
		assert.Equal(t, []any{"hello", float64(24)}, got)
	})

	t.Run("empty body on unregistered channel", func(t *testing.T) {
		registry := events.NewRegistry(testLogger())

		rr := doRequest(t, newTestRouter(registry), http.MethodPost, "/api/channels/nobody/emit", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp EmitResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Invoked)
	})

	t.Run("malformed body", func(t *testing.T) {
		registry := events.NewRegistry(testLogger())

		rr := doRequest(t, newTestRouter(registry), http.MethodPost, "/api/channels/x/emit", `{"args":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("too many args", func(t *testing.T) {
		registry := events.NewRegistry(testLogger())
		args := make([]int, 33)
		body, err := json.Marshal(map[string]any{"args": args})
		require.NoError(t, err)

		rr := doRequest(t, newTestRouter(registry), http.MethodPost, "/api/channels/x/emit", string(body))
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Validation error", resp.Error)
	})

	t.Run("listener failure is sanitized", func(t *testing.T) {
		registry := events.NewRegistry(testLogger())
		secondCalled := false
		registry.On("z", func(ctx context.Context, args ...any) error {
			return errors.New("dial postgres://admin:pa55word@db:5432 failed")
		})
		registry.On("z", func(ctx context.Context, args ...any) error {
			secondCalled = true
			return nil
		})

		rr := doRequest(t, newTestRouter(registry), http.MethodPost, "/api/channels/z/emit", `{}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.False(t, secondCalled)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Event listener failed", resp.Error)
		assert.False(t, bytes.Contains(rr.Body.Bytes(), []byte("pa55word")))
	})
}

// stubRegistry lets tests force specific emit errors.
type stubRegistry struct {
	emitErr error
}

func (s *stubRegistry) Emit(ctx context.Context, channel string, args ...any) (bool, error) {
	return s.emitErr == nil, s.emitErr
}

func (s *stubRegistry) ListenerCount(channel string) int { return 0 }

func (s *stubRegistry) ChannelNames() []string { return nil }

func TestChannelHandler_EmitDeadline(t *testing.T) {
	registry := &stubRegistry{emitErr: &events.ListenerError{
		Channel: "slow",
		Err:     context.DeadlineExceeded,
	}}

	rr := doRequest(t, newTestRouter(registry), http.MethodPost, "/api/channels/slow/emit", "")
	assert.Equal(t, http.StatusGatewayTimeout, rr.Code)
}
