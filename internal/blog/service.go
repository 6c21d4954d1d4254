// Package blog implements the read-side service: listing published posts and
// assembling a single post by slug. Caching lives in the HTTP layer; the
// service always reads through to the source.
package blog

import (
	"context"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/inkwell-sites/inkwell/internal/content"
	"github.com/inkwell-sites/inkwell/internal/errors"
	"github.com/inkwell-sites/inkwell/internal/logfields"
	"github.com/inkwell-sites/inkwell/internal/metrics"
	"github.com/inkwell-sites/inkwell/internal/notion"
)

// Source is the content backend the service reads from.
type Source interface {
	QueryPublishedPages(ctx context.Context) ([]notion.Page, error)
	ListBlockChildren(ctx context.Context, blockID string) ([]notion.Block, error)
}

// Service serves post summaries and full posts.
type Service struct {
	source   Source
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewService wires the read service. A nil recorder falls back to a noop.
func NewService(source Source, logger *slog.Logger, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Service{source: source, logger: logger, recorder: recorder}
}

// ListPosts returns summaries of every published post in source order. No
// block trees are fetched for the list.
func (s *Service) ListPosts(ctx context.Context) ([]content.Post, error) {
	pages, err := s.source.QueryPublishedPages(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]content.Post, 0, len(pages))
	for _, page := range pages {
		posts = append(posts, content.SummarizePost(page))
	}

	s.logger.Debug("post list built", slog.Int("count", len(posts)))
	return posts, nil
}

// GetPostBySlug assembles the full post whose slug matches. Exact matches win;
// otherwise the comparison retries with Unicode case folding so that a URL
// typed in the wrong case still resolves.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (content.Post, error) {
	pages, err := s.source.QueryPublishedPages(ctx)
	if err != nil {
		return content.Post{}, err
	}

	page, ok := findBySlug(pages, slug)
	if !ok {
		return content.Post{}, errors.PostNotFound(slug)
	}

	fetch := func(id string) ([]notion.Block, error) {
		return s.source.ListBlockChildren(ctx, id)
	}
	post, err := content.AssemblePost(page, fetch)
	if err != nil {
		return content.Post{}, err
	}
	s.recorder.IncPostAssembled()

	s.logger.Debug("post assembled", logfields.Slug(slug), logfields.PageID(page.ID))
	return post, nil
}

func findBySlug(pages []notion.Page, slug string) (notion.Page, bool) {
	for _, page := range pages {
		if pageSlug(page) == slug {
			return page, true
		}
	}

	folded := foldSlug(slug)
	for _, page := range pages {
		if foldSlug(pageSlug(page)) == folded {
			return page, true
		}
	}
	return notion.Page{}, false
}

func pageSlug(page notion.Page) string {
	return content.ExtractRichText(page.Properties[content.PropSlug])
}

func foldSlug(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
