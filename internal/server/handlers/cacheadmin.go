package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inkwell-sites/inkwell/internal/cache"
	"github.com/inkwell-sites/inkwell/internal/config"
	"github.com/inkwell-sites/inkwell/internal/server/responses"
)

// CacheHandlers exposes cache introspection and manual invalidation.
type CacheHandlers struct {
	cache  *cache.Cache
	cfg    config.CacheConfig
	logger *slog.Logger
}

func NewCacheHandlers(c *cache.Cache, cfg config.CacheConfig, logger *slog.Logger) *CacheHandlers {
	return &CacheHandlers{cache: c, cfg: cfg, logger: logger}
}

// HandleStats serves GET /cache/stats. Answering also sweeps expired entries;
// the count of swept entries is part of the response.
func (h *CacheHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	cleaned := h.cache.CleanupExpired()
	stats := h.cache.Stats()

	_ = writeJSON(w, http.StatusOK, responses.CacheStatsResponse{
		CacheStats:     stats,
		ExpiredCleaned: cleaned,
		CacheInfo: responses.CacheInfo{
			PostsListTTLSec:      h.cfg.ListTTLSec,
			IndividualPostTTLSec: h.cfg.PostTTLSec,
		},
	})
}

// HandleClear serves POST /cache/clear.
func (h *CacheHandlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	h.logger.Info("cache cleared by request")
	_ = writeJSON(w, http.StatusOK, responses.CacheClearResponse{
		Status:    "cleared",
		ClearedAt: time.Now().UTC(),
	})
}
