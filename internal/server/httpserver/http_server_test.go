package httpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-sites/inkwell/internal/blog"
	"github.com/inkwell-sites/inkwell/internal/cache"
	"github.com/inkwell-sites/inkwell/internal/config"
	"github.com/inkwell-sites/inkwell/internal/eventstore"
	"github.com/inkwell-sites/inkwell/internal/mailer"
	"github.com/inkwell-sites/inkwell/internal/notion"
)

type emptySource struct{}

func (emptySource) QueryPublishedPages(ctx context.Context) ([]notion.Page, error) {
	return nil, nil
}

func (emptySource) ListBlockChildren(ctx context.Context, blockID string) ([]notion.Block, error) {
	return nil, nil
}

type nopSender struct{}

func (nopSender) Send(msg mailer.Message) error { return nil }

func newTestServer(t *testing.T, metricsHandler http.Handler) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := eventstore.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{APIPort: 8000, AdminPort: 8001},
		Cache:  config.CacheConfig{ListTTLSec: 300, PostTTLSec: 600, CleanupIntervalSec: 300},
	}

	return New(cfg, logger, Options{
		Service:        blog.NewService(emptySource{}, logger, nil),
		Cache:          cache.New(),
		Store:          store,
		Mailer:         nopSender{},
		MetricsHandler: metricsHandler,
	})
}

func TestAPIRouting(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		method   string
		path     string
		expected int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/posts", http.StatusOK},
		{http.MethodGet, "/cache/stats", http.StatusOK},
		{http.MethodPost, "/cache/clear", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodPost, "/posts", http.StatusMethodNotAllowed},
		{http.MethodGet, "/cache/clear", http.StatusMethodNotAllowed},
	}
	for _, test := range tests {
		rec := httptest.NewRecorder()
		s.apiServer.Handler.ServeHTTP(rec, httptest.NewRequest(test.method, test.path, nil))
		require.Equal(t, test.expected, rec.Code, "%s %s", test.method, test.path)
	}
}

func TestAdminRouting(t *testing.T) {
	s := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.adminServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Metrics route is absent when no handler was supplied.
	rec = httptest.NewRecorder()
	s.adminServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	s := newTestServer(t, metrics)

	rec := httptest.NewRecorder()
	s.adminServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "# metrics")
}

func TestAPIRoutesIsolatedFromAdmin(t *testing.T) {
	s := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.apiServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
