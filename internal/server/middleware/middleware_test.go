package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	ierrors "github.com/inkwell-sites/inkwell/internal/errors"
)

func chainFor(t *testing.T, next http.Handler, origins []string) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	adapter := ierrors.NewHTTPErrorAdapter(logger)
	return Chain(logger, adapter, nil, origins)(next)
}

func TestChainSetsRequestID(t *testing.T) {
	h := chainFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestChainKeepsProvidedRequestID(t *testing.T) {
	h := chainFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "given-id", rec.Header().Get("X-Request-ID"))
}

func TestChainRecoversFromPanic(t *testing.T) {
	h := chainFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal server error")
}

func TestChainCORSAllowedOrigin(t *testing.T) {
	h := chainFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		[]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestChainCORSUnknownOrigin(t *testing.T) {
	h := chainFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		[]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestChainPreflight(t *testing.T) {
	h := chainFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}), []string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodOptions, "/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}
