package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/httpserver"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("serves until the context is cancelled", func(t *testing.T) {
		srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"), httpserver.WithShutdownTimeout(time.Second))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))
		}()

		waitCtx, waitCancel := context.WithTimeout(ctx, 2*time.Second)
		defer waitCancel()
		addr := srv.Addr(waitCtx)
		require.NotNil(t, addr)

		resp, err := http.Get("http://" + addr.String())
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			require.Fail(t, "run did not finish")
		}
	})

	t.Run("listen error", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		srv := httpserver.New(httpserver.WithAddr(ln.Addr().String()))
		err = srv.Run(context.Background(), nil)
		assert.ErrorIs(t, err, httpserver.ErrStart)
	})

	t.Run("second run is rejected", func(t *testing.T) {
		srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx, nil) }()
		require.NotNil(t, srv.Addr(ctx))

		err := srv.Run(ctx, nil)
		assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)

		cancel()
		require.NoError(t, <-done)
	})
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	probe := func(err error) func(context.Context) error {
		return func(context.Context) error { return err }
	}
	get := func(h http.Handler) (int, map[string]any) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		var body map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		return rec.Code, body
	}

	t.Run("liveness", func(t *testing.T) {
		code, body := get(httpserver.HealthCheckHandler(nil, time.Second))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body["status"])
		assert.NotContains(t, body, "checks")
	})

	t.Run("all checks pass", func(t *testing.T) {
		code, body := get(httpserver.HealthCheckHandler(nil, time.Second,
			httpserver.Check{Name: "postgres", Probe: probe(nil)},
			httpserver.Check{Name: "redis", Probe: probe(nil)},
		))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, map[string]any{"postgres": "ok", "redis": "ok"}, body["checks"])
	})

	t.Run("one check fails", func(t *testing.T) {
		code, body := get(httpserver.HealthCheckHandler(nil, time.Second,
			httpserver.Check{Name: "postgres", Probe: probe(nil)},
			httpserver.Check{Name: "mongo", Probe: probe(errors.New("no reachable servers"))},
		))
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unavailable", body["status"])
		assert.Equal(t, map[string]any{"postgres": "ok", "mongo": "unavailable"}, body["checks"])
	})

	t.Run("probe receives a deadline", func(t *testing.T) {
		var hasDeadline bool
		get(httpserver.HealthCheckHandler(nil, time.Second, httpserver.Check{Name: "x", Probe: func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		}}))
		assert.True(t, hasDeadline)
	})
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := httpserver.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httpserver.RequestIDFromContext(r.Context())
	}))

	t.Run("reuses a valid header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(httpserver.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(httpserver.RequestIDHeader))
	})

	t.Run("replaces an invalid header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(httpserver.RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.NotEqual(t, "<script>", seen)
		assert.Len(t, seen, 36)
	})

	t.Run("extractor", func(t *testing.T) {
		extract := httpserver.RequestIDExtractor()
		_, ok := extract(context.Background())
		assert.False(t, ok)
	})
}
