package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-sites/inkwell/internal/cache"
	"github.com/inkwell-sites/inkwell/internal/server/responses"
)

func TestHandleStatsReportsOccupancyAndTTLs(t *testing.T) {
	c := cache.New()
	c.Set("posts:list", "v", time.Minute)
	h := NewCacheHandlers(c, testCacheConfig(), testLogger())

	rec := httptest.NewRecorder()
	h.HandleStats(rec, httptest.NewRequest(http.MethodGet, "/cache/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp responses.CacheStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.CacheStats.Total)
	require.Equal(t, 1, resp.CacheStats.Valid)
	require.Equal(t, 0, resp.ExpiredCleaned)
	require.Equal(t, 300, resp.CacheInfo.PostsListTTLSec)
	require.Equal(t, 600, resp.CacheInfo.IndividualPostTTLSec)
}

func TestHandleClearFlushesCache(t *testing.T) {
	c := cache.New()
	c.Set("posts:list", "v", time.Minute)
	c.Set("posts:slug:x", "v", time.Minute)
	h := NewCacheHandlers(c, testCacheConfig(), testLogger())

	rec := httptest.NewRecorder()
	h.HandleClear(rec, httptest.NewRequest(http.MethodPost, "/cache/clear", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp responses.CacheClearResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "cleared", resp.Status)
	require.Equal(t, 0, c.Stats().Total)
}
