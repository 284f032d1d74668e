package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	Base
	AuthorID    *uuid.UUID `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  *string    `json:"cover_image"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
}

type BlogInput struct {
	Title      string   `json:"title" validate:"required,min=3,max=200"`
	Excerpt    string   `json:"excerpt" validate:"max=500"`
	Content    string   `json:"content" validate:"required,max=100000"`
	CoverImage *string  `json:"cover_image" validate:"omitempty,max=500"`
	Tags       []string `json:"tags" validate:"max=20,dive,max=50"`
	Published  bool     `json:"published"`
}

func (in *BlogInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	tags := cleanList(in.Tags)
	for i := range tags {
		tags[i] = strings.ToLower(tags[i])
	}
	in.Tags = tags
}

type CreateBlogRequest struct {
	BlogInput
}

func (r *CreateBlogRequest) Validate() error {
	r.normalize()
	return validate.Struct(r)
}

type UpdateBlogRequest struct {
	IDParam
	BlogInput
}

func (r *UpdateBlogRequest) Validate() error {
	r.normalize()
	return validate.Struct(r)
}

type SlugParam struct {
	Slug string `param:"slug" json:"-" validate:"required,max=220"`
}

func (p *SlugParam) Validate() error {
	return validate.Struct(p)
}

type ListBlogsQuery struct {
	PaginationQuery
	Tag    string `query:"tag" validate:"omitempty,max=50"`
	Search string `query:"search" validate:"omitempty,max=100"`

	// IncludeDrafts is set by admin listings only.
	IncludeDrafts bool `query:"-"`
}

func (q *ListBlogsQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Tag = strings.ToLower(strings.TrimSpace(q.Tag))
	q.Normalize()
	return nil
}
