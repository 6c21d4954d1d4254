// Package responses defines the JSON response types used by Inkwell HTTP handlers.
package responses

import (
	"time"

	"github.com/inkwell-sites/inkwell/internal/cache"
	"github.com/inkwell-sites/inkwell/internal/content"
)

// RootResponse identifies the service on GET /.
type RootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// PostsResponse wraps the published post list.
type PostsResponse struct {
	Posts []content.Post `json:"posts"`
	Total int            `json:"total"`
}

// PostResponse is a single assembled post. ContentHTML is populated only when
// the client asks for the HTML rendition.
type PostResponse struct {
	content.Post
	ContentHTML string `json:"content_html,omitempty"`
}

// CacheStatsResponse reports cache occupancy plus the sweep performed while
// answering.
type CacheStatsResponse struct {
	CacheStats     cache.Stats `json:"cache_stats"`
	ExpiredCleaned int         `json:"expired_cleaned"`
	CacheInfo      CacheInfo   `json:"cache_info"`
}

// CacheInfo reports the configured TTLs.
type CacheInfo struct {
	PostsListTTLSec      int `json:"posts_list_ttl"`
	IndividualPostTTLSec int `json:"individual_post_ttl"`
}

// CacheClearResponse confirms a manual cache flush.
type CacheClearResponse struct {
	Status    string    `json:"status"`
	ClearedAt time.Time `json:"cleared_at"`
}

// WebhookResponse acknowledges a webhook delivery.
type WebhookResponse struct {
	Status            string `json:"status"`
	VerificationToken string `json:"verification_token,omitempty"`
}

// ContactResponse acknowledges a contact form submission.
type ContactResponse struct {
	Status string `json:"status"`
}

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}
