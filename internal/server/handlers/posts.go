package handlers

import (
	"log/slog"
	"time"

	"net/http"

	"github.com/inkwell-sites/inkwell/internal/blog"
	"github.com/inkwell-sites/inkwell/internal/cache"
	"github.com/inkwell-sites/inkwell/internal/config"
	"github.com/inkwell-sites/inkwell/internal/content"
	ierrors "github.com/inkwell-sites/inkwell/internal/errors"
	"github.com/inkwell-sites/inkwell/internal/logfields"
	"github.com/inkwell-sites/inkwell/internal/markdown"
	"github.com/inkwell-sites/inkwell/internal/metrics"
	"github.com/inkwell-sites/inkwell/internal/server/responses"
)

const (
	listCacheKey    = "posts:list"
	postCachePrefix = "posts:slug:"
)

// PostHandlers serves the published post list and single posts. Responses are
// cached here, in front of the service, so a cache hit never touches the
// source.
type PostHandlers struct {
	service      *blog.Service
	cache        *cache.Cache
	listTTL      time.Duration
	postTTL      time.Duration
	html         *markdown.Renderer
	errorAdapter *ierrors.HTTPErrorAdapter
	logger       *slog.Logger
	recorder     metrics.Recorder
}

func NewPostHandlers(service *blog.Service, c *cache.Cache, cfg config.CacheConfig, logger *slog.Logger, recorder metrics.Recorder) *PostHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &PostHandlers{
		service:      service,
		cache:        c,
		listTTL:      cfg.ListTTL(),
		postTTL:      cfg.PostTTL(),
		html:         markdown.NewRenderer(),
		errorAdapter: ierrors.NewHTTPErrorAdapter(logger),
		logger:       logger,
		recorder:     recorder,
	}
}

// HandleList serves GET /posts.
func (h *PostHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.Get(listCacheKey); ok {
		h.recorder.IncCacheResult(listCacheKey, true)
		_ = writeJSON(w, http.StatusOK, cached)
		return
	}
	h.recorder.IncCacheResult(listCacheKey, false)

	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, err)
		return
	}

	resp := responses.PostsResponse{Posts: posts, Total: len(posts)}
	h.cache.Set(listCacheKey, resp, h.listTTL)
	h.logger.Info("post list fetched and cached", slog.Int("total", resp.Total))
	_ = writeJSON(w, http.StatusOK, resp)
}

// HandleDetail serves GET /posts/{slug}. With ?format=html the response also
// carries a rendered HTML body.
func (h *PostHandlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.errorAdapter.WriteErrorResponse(w, ierrors.ValidationError("slug is required"))
		return
	}
	wantHTML := r.URL.Query().Get("format") == "html"

	key := postCachePrefix + slug
	var post content.Post
	if cached, ok := h.cache.Get(key); ok {
		h.recorder.IncCacheResult(key, true)
		post = cached.(content.Post)
	} else {
		h.recorder.IncCacheResult(key, false)

		var err error
		post, err = h.service.GetPostBySlug(r.Context(), slug)
		if err != nil {
			h.errorAdapter.WriteErrorResponse(w, err)
			return
		}
		h.cache.Set(key, post, h.postTTL)
		h.logger.Info("post fetched and cached", logfields.Slug(slug))
	}

	resp := responses.PostResponse{Post: post}
	if wantHTML {
		html, err := h.html.ToHTML(post.Content)
		if err != nil {
			h.errorAdapter.WriteErrorResponse(w,
				ierrors.WrapError(err, ierrors.CategoryInternal, "html rendering failed"))
			return
		}
		resp.ContentHTML = html
	}
	_ = writeJSON(w, http.StatusOK, resp)
}
