package blog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/inkwell-sites/inkwell/internal/content"
	"github.com/inkwell-sites/inkwell/internal/errors"
	"github.com/inkwell-sites/inkwell/internal/notion"
)

type fakeSource struct {
	pages      []notion.Page
	children   map[string][]notion.Block
	queryErr   error
	fetchErr   error
	queryCalls int
	fetchCalls int
}

func (f *fakeSource) QueryPublishedPages(ctx context.Context) ([]notion.Page, error) {
	f.queryCalls++
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.pages, nil
}

func (f *fakeSource) ListBlockChildren(ctx context.Context, blockID string) ([]notion.Block, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.children[blockID], nil
}

func page(id, title, slug string) notion.Page {
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

func paragraph(text string) notion.Block {
	return notion.Block{
		ID:   "p-" + text,
		Type: "paragraph",
		Paragraph: &notion.TextBlock{RichText: []notion.RichText{
			{Text: &notion.TextContent{Content: text}},
		}},
	}
}

func newTestService(source Source) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(source, logger, nil)
}

func TestListPostsPreservesSourceOrder(t *testing.T) {
	src := &fakeSource{pages: []notion.Page{
		page("1", "Newest", "newest"),
		page("2", "Older", "older"),
	}}
	svc := newTestService(src)

	posts, err := svc.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 || posts[0].Slug != "newest" || posts[1].Slug != "older" {
		t.Fatalf("source order must be preserved: %v", posts)
	}
	if posts[0].Content != "" {
		t.Fatalf("list entries are summaries without content: %q", posts[0].Content)
	}
	if src.fetchCalls != 0 {
		t.Fatalf("listing must not fetch block trees, fetches: %d", src.fetchCalls)
	}
}

func TestListPostsQueryFailurePropagates(t *testing.T) {
	src := &fakeSource{queryErr: errors.UpstreamError(nil, "query failed")}
	svc := newTestService(src)

	if _, err := svc.ListPosts(context.Background()); err == nil {
		t.Fatal("expected query failure to propagate")
	}
}

func TestGetPostBySlugAssemblesContent(t *testing.T) {
	src := &fakeSource{
		pages:    []notion.Page{page("p1", "Hello", "hello")},
		children: map[string][]notion.Block{"p1": {paragraph("body")}},
	}
	svc := newTestService(src)

	post, err := svc.GetPostBySlug(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "Hello" || post.Content != "body" {
		t.Fatalf("unexpected post: %+v", post)
	}
}

func TestGetPostBySlugExactMatchWinsOverFolded(t *testing.T) {
	src := &fakeSource{
		pages: []notion.Page{
			page("p1", "Upper", "Hello"),
			page("p2", "Lower", "hello"),
		},
		children: map[string][]notion.Block{
			"p1": {paragraph("upper body")},
			"p2": {paragraph("lower body")},
		},
	}
	svc := newTestService(src)

	post, err := svc.GetPostBySlug(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != "p2" {
		t.Fatalf("exact slug match must win: %+v", post)
	}
}

func TestGetPostBySlugFoldedFallback(t *testing.T) {
	src := &fakeSource{
		pages:    []notion.Page{page("p1", "Hello", "Hello-World")},
		children: map[string][]notion.Block{"p1": {paragraph("body")}},
	}
	svc := newTestService(src)

	post, err := svc.GetPostBySlug(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("case-folded slug must resolve: %v", err)
	}
	if post.ID != "p1" {
		t.Fatalf("unexpected post: %+v", post)
	}
}

func TestGetPostBySlugNotFound(t *testing.T) {
	src := &fakeSource{pages: []notion.Page{page("p1", "Hello", "hello")}}
	svc := newTestService(src)

	_, err := svc.GetPostBySlug(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected not found error")
	}
	if !errors.IsCategory(err, errors.CategoryNotFound) {
		t.Fatalf("expected not_found category, got %v", err)
	}
}

func TestGetPostBySlugFetchFailurePropagates(t *testing.T) {
	src := &fakeSource{
		pages:    []notion.Page{page("p1", "Hello", "hello")},
		fetchErr: errors.BlockFetchFailed("p1", nil),
	}
	svc := newTestService(src)

	post, err := svc.GetPostBySlug(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected fetch failure to propagate")
	}
	if post.ID != "" || post.Content != "" {
		t.Fatalf("no partial post on failure: %+v", post)
	}
}
