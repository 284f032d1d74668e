package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const blogColumns = `id, author_id, title, slug, excerpt, content, cover_image, tags, published,
	published_at, created_at, updated_at`

type BlogRepository struct {
	db database.DBTX
}

func NewBlogRepository(db database.DBTX) *BlogRepository {
	return &BlogRepository{db: db}
}

func scanBlog(row pgx.Row) (model.Blog, error) {
	var b model.Blog
	err := row.Scan(
		&b.ID,
		&b.AuthorID,
		&b.Title,
		&b.Slug,
		&b.Excerpt,
		&b.Content,
		&b.CoverImage,
		&b.Tags,
		&b.Published,
		&b.PublishedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func (r *BlogRepository) Create(ctx context.Context, b *model.Blog) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO blogs (author_id, title, slug, excerpt, content, cover_image, tags, published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		b.AuthorID, b.Title, b.Slug, b.Excerpt, b.Content, b.CoverImage, nonNil(b.Tags), b.Published, b.PublishedAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	b, err := scanBlog(r.db.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("blogs", err)
	}
	return &b, nil
}

func (r *BlogRepository) GetPublishedBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	b, err := scanBlog(r.db.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE slug = $1 AND published`, slug))
	if err != nil {
		return nil, notFound("blogs", err)
	}
	return &b, nil
}

// SlugsWithPrefix returns existing slugs equal to base or of the form
// base-N, ignoring the blog being edited.
func (r *BlogRepository) SlugsWithPrefix(ctx context.Context, base string, exclude *uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT slug FROM blogs
		WHERE (slug = $1 OR slug LIKE $2) AND ($3::uuid IS NULL OR id <> $3)`,
		base, base+"-%", exclude,
	)
	if err != nil {
		return nil, fmt.Errorf("list slugs: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *BlogRepository) List(ctx context.Context, q model.ListBlogsQuery) ([]model.Blog, int64, error) {
	var w where
	if !q.IncludeDrafts {
		w.raw(`published`)
	}
	if q.Tag != "" {
		w.add(`? = ANY(tags)`, q.Tag)
	}
	if q.Search != "" {
		w.add(`(title ILIKE ? OR excerpt ILIKE ?)`, likePattern(q.Search))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	limit, args := w.page(q.Limit, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+blogColumns+` FROM blogs`+w.String()+
		` ORDER BY published_at DESC NULLS LAST, created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	blogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Blog, error) {
		return scanBlog(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan blogs: %w", err)
	}
	return blogs, total, nil
}

func (r *BlogRepository) Update(ctx context.Context, b *model.Blog) error {
	err := r.db.QueryRow(ctx, `
		UPDATE blogs SET
			title = $2, slug = $3, excerpt = $4, content = $5, cover_image = $6, tags = $7,
			published = $8, published_at = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		b.ID, b.Title, b.Slug, b.Excerpt, b.Content, b.CoverImage, nonNil(b.Tags), b.Published, b.PublishedAt,
	).Scan(&b.UpdatedAt)
	if err != nil {
		return notFound("blogs", err)
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "blogs", id)
}
