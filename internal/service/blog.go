package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/deppfellow/tourism/internal/lib/utils"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

const excerptLength = 200

type BlogStore interface {
	Create(ctx context.Context, b *model.Blog) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Blog, error)
	SlugsWithPrefix(ctx context.Context, base string, exclude *uuid.UUID) ([]string, error)
	List(ctx context.Context, q model.ListBlogsQuery) ([]model.Blog, int64, error)
	Update(ctx context.Context, b *model.Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BlogService struct {
	blogs   BlogStore
	content *bluemonday.Policy
	plain   *bluemonday.Policy
	logger  *zerolog.Logger
	now     func() time.Time
}

func NewBlogService(blogs BlogStore, logger *zerolog.Logger) *BlogService {
	plain := bluemonday.StrictPolicy()
	plain.AddSpaceWhenStrippingTag(true)

	return &BlogService{
		blogs:   blogs,
		content: bluemonday.UGCPolicy(),
		plain:   plain,
		logger:  logger,
		now:     time.Now,
	}
}

// List returns published posts, or drafts too for admins.
func (s *BlogService) List(ctx context.Context, q *model.ListBlogsQuery, admin bool) (*model.PaginatedResponse[model.Blog], error) {
	q.IncludeDrafts = admin
	items, total, err := s.blogs.List(ctx, *q)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	return s.blogs.GetPublishedBySlug(ctx, slug)
}

func (s *BlogService) Get(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	return s.blogs.GetByID(ctx, id)
}

func (s *BlogService) Create(ctx context.Context, authorID uuid.UUID, req *model.CreateBlogRequest) (*model.Blog, error) {
	slug, err := s.uniqueSlug(ctx, req.Title, nil)
	if err != nil {
		return nil, err
	}

	b := &model.Blog{AuthorID: &authorID, Slug: slug}
	s.apply(b, req.BlogInput)

	if err := s.blogs.Create(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info().Str("blog_id", b.ID.String()).Str("slug", b.Slug).Bool("published", b.Published).Msg("blog created")
	return b, nil
}

// Update re-derives the slug only when the title changed, so published
// links stay stable across edits of the body.
func (s *BlogService) Update(ctx context.Context, req *model.UpdateBlogRequest) (*model.Blog, error) {
	id := req.UUID()
	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != b.Title {
		slug, err := s.uniqueSlug(ctx, req.Title, &id)
		if err != nil {
			return nil, err
		}
		b.Slug = slug
	}
	s.apply(b, req.BlogInput)

	if err := s.blogs.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.blogs.Delete(ctx, id)
}

// apply copies the input onto b. published_at is set the first time a
// post goes live and kept afterwards.
func (s *BlogService) apply(b *model.Blog, in model.BlogInput) {
	b.Title = in.Title
	b.Content = s.content.Sanitize(in.Content)
	b.Excerpt = strings.TrimSpace(in.Excerpt)
	if b.Excerpt == "" {
		b.Excerpt = s.excerpt(b.Content)
	}
	b.CoverImage = in.CoverImage
	b.Tags = in.Tags
	b.Published = in.Published
	if b.Published && b.PublishedAt == nil {
		b.PublishedAt = utils.Ptr(s.now().UTC())
	}
}

func (s *BlogService) excerpt(html string) string {
	text := strings.Join(strings.Fields(s.plain.Sanitize(html)), " ")
	if utf8.RuneCountInString(text) <= excerptLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:excerptLength])) + "..."
}

// uniqueSlug slugifies title and appends -2, -3, ... until no other post
// uses it.
func (s *BlogService) uniqueSlug(ctx context.Context, title string, exclude *uuid.UUID) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "post"
	}

	existing, err := s.blogs.SlugsWithPrefix(ctx, base, exclude)
	if err != nil {
		return "", err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, slug := range existing {
		taken[slug] = struct{}{}
	}

	slug := base
	for n := 2; ; n++ {
		if _, ok := taken[slug]; !ok {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
