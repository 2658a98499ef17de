package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localeroute/middlewares"
)

func serveRequestID(t *testing.T, req *http.Request, opts ...middlewares.RequestIDOption) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var captured string
	h := middlewares.RequestID(opts...)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = middlewares.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, captured
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates new request ID when not present", func(t *testing.T) {
		t.Parallel()

		rec, id := serveRequestID(t, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, id)
		require.Equal(t, id, rec.Header().Get("X-Request-ID"))
		_, err := uuid.Parse(id)
		require.NoError(t, err)
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "existing-request-id-123")

		rec, id := serveRequestID(t, req)
		require.Equal(t, "existing-request-id-123", id)
		require.Equal(t, "existing-request-id-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom headers respect priority order", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace-ID", "trace-456")
		req.Header.Set("X-Custom-ID", "custom-123")

		rec, _ := serveRequestID(t, req,
			middlewares.WithRequestIDHeaders("X-Custom-ID", "X-Trace-ID"),
			middlewares.WithRequestIDResponseHeader("X-Trace-ID"),
		)
		require.Equal(t, "custom-123", rec.Header().Get("X-Trace-ID"))
		require.Empty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator", func(t *testing.T) {
		t.Parallel()

		_, id := serveRequestID(t, httptest.NewRequest(http.MethodGet, "/", nil),
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
		)
		require.Equal(t, "fixed", id)
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	extract := middlewares.RequestIDExtractor()

	_, ok := extract(context.Background())
	require.False(t, ok)

	var attrValue string
	h := middlewares.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		attr, ok := extract(r.Context())
		require.True(t, ok)
		require.Equal(t, "request_id", attr.Key)
		attrValue = attr.Value.String()
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "abc", attrValue)
}
