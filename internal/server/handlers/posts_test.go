package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-sites/inkwell/internal/blog"
	"github.com/inkwell-sites/inkwell/internal/cache"
	"github.com/inkwell-sites/inkwell/internal/config"
	"github.com/inkwell-sites/inkwell/internal/content"
	"github.com/inkwell-sites/inkwell/internal/notion"
	"github.com/inkwell-sites/inkwell/internal/server/responses"
)

type fakeSource struct {
	pages      []notion.Page
	children   map[string][]notion.Block
	queryCalls int
}

func (f *fakeSource) QueryPublishedPages(ctx context.Context) ([]notion.Page, error) {
	f.queryCalls++
	return f.pages, nil
}

func (f *fakeSource) ListBlockChildren(ctx context.Context, blockID string) ([]notion.Block, error) {
	return f.children[blockID], nil
}

func testPage(id, title, slug string) notion.Page {
	return notion.Page{
		ID: id,
		Properties: map[string]notion.PropertyValue{
			content.PropTitle: {Type: "title", Title: []notion.RichText{
				{Text: &notion.TextContent{Content: title}},
			}},
			content.PropSlug: {Type: "rich_text", RichText: []notion.RichText{
				{Text: &notion.TextContent{Content: slug}},
			}},
			content.PropPublished: {Type: "checkbox", Checkbox: true},
		},
	}
}

func testParagraph(text string) notion.Block {
	return notion.Block{
		ID:   "b-" + text,
		Type: "paragraph",
		Paragraph: &notion.TextBlock{RichText: []notion.RichText{
			{Text: &notion.TextContent{Content: text}},
		}},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{ListTTLSec: 300, PostTTLSec: 600, CleanupIntervalSec: 300}
}

func newPostHandlers(src *fakeSource) (*PostHandlers, *cache.Cache) {
	logger := testLogger()
	svc := blog.NewService(src, logger, nil)
	c := cache.New()
	return NewPostHandlers(svc, c, testCacheConfig(), logger, nil), c
}

func TestHandleListReturnsPosts(t *testing.T) {
	src := &fakeSource{pages: []notion.Page{
		testPage("1", "First", "first"),
		testPage("2", "Second", "second"),
	}}
	h, _ := newPostHandlers(src)

	rec := httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp responses.PostsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	require.Equal(t, "first", resp.Posts[0].Slug)
	require.Equal(t, "second", resp.Posts[1].Slug)
}

func TestHandleListServesFromCache(t *testing.T) {
	src := &fakeSource{pages: []notion.Page{testPage("1", "First", "first")}}
	h, _ := newPostHandlers(src)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Equal(t, 1, src.queryCalls, "second request must be served from cache")
}

func detailRequest(slug, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/posts/"+slug+query, nil)
	req.SetPathValue("slug", slug)
	return req
}

func TestHandleDetailReturnsPost(t *testing.T) {
	src := &fakeSource{
		pages:    []notion.Page{testPage("p1", "Hello", "hello")},
		children: map[string][]notion.Block{"p1": {testParagraph("body text")}},
	}
	h, _ := newPostHandlers(src)

	rec := httptest.NewRecorder()
	h.HandleDetail(rec, detailRequest("hello", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp responses.PostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Hello", resp.Title)
	require.Equal(t, "body text", resp.Content)
	require.Empty(t, resp.ContentHTML)
}

func TestHandleDetailHTMLFormat(t *testing.T) {
	src := &fakeSource{
		pages:    []notion.Page{testPage("p1", "Hello", "hello")},
		children: map[string][]notion.Block{"p1": {testParagraph("body text")}},
	}
	h, _ := newPostHandlers(src)

	rec := httptest.NewRecorder()
	h.HandleDetail(rec, detailRequest("hello", "?format=html"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp responses.PostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.ContentHTML, "<p>body text</p>")
}

func TestHandleDetailNotFound(t *testing.T) {
	src := &fakeSource{pages: []notion.Page{testPage("p1", "Hello", "hello")}}
	h, _ := newPostHandlers(src)

	rec := httptest.NewRecorder()
	h.HandleDetail(rec, detailRequest("missing", ""))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDetailServesFromCache(t *testing.T) {
	src := &fakeSource{
		pages:    []notion.Page{testPage("p1", "Hello", "hello")},
		children: map[string][]notion.Block{"p1": {testParagraph("body text")}},
	}
	h, _ := newPostHandlers(src)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.HandleDetail(rec, detailRequest("hello", ""))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Equal(t, 1, src.queryCalls, "second request must be served from cache")
}

func TestHandleDetailCacheClearForcesRefetch(t *testing.T) {
	src := &fakeSource{
		pages:    []notion.Page{testPage("p1", "Hello", "hello")},
		children: map[string][]notion.Block{"p1": {testParagraph("body text")}},
	}
	h, c := newPostHandlers(src)

	rec := httptest.NewRecorder()
	h.HandleDetail(rec, detailRequest("hello", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	c.Clear()

	rec = httptest.NewRecorder()
	h.HandleDetail(rec, detailRequest("hello", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, src.queryCalls)
}
