package blogs

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/types"
)

// BlogDTO is the blog post read model.
type BlogDTO struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Slug          string           `json:"slug"`
	Excerpt       *string          `json:"excerpt,omitempty"`
	Content       string           `json:"content,omitempty"`
	FeaturedImage *string          `json:"featuredImage,omitempty"`
	AuthorName    string           `json:"authorName,omitempty"`
	Status        enums.BlogStatus `json:"status"`
	Tags          []string         `json:"tags"`
	ViewCount     int64            `json:"viewCount"`
	PublishedAt   *time.Time       `json:"publishedAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ListResult is one page of posts plus its pagination envelope.
type ListResult struct {
	Blogs      []BlogDTO        `json:"blogs"`
	Pagination types.Pagination `json:"pagination"`
}

// CreateInput is the payload to draft a new post.
type CreateInput struct {
	Title         string
	Slug          string
	Excerpt       *string
	Content       string
	FeaturedImage *string
	AuthorID      *int64
	Tags          []string
	Publish       bool
}

// UpdateInput carries the editable fields. Nil pointers leave the stored
// value untouched.
type UpdateInput struct {
	Title         *string
	Excerpt       *string
	Content       *string
	FeaturedImage *string
	Tags          []string
	Status        *enums.BlogStatus
}

// Service exposes editorial and public blog operations.
type Service interface {
	ListPublished(ctx context.Context, tag string, params pagination.Params) (*ListResult, error)
	ListAll(ctx context.Context, params pagination.Params) (*ListResult, error)
	GetBySlug(ctx context.Context, slug string) (*BlogDTO, error)
	Create(ctx context.Context, input CreateInput) (*BlogDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*BlogDTO, error)
	Delete(ctx context.Context, id int64) error
}

type blogRepo interface {
	Create(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	FindByID(ctx context.Context, id int64) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	ListPublished(ctx context.Context, tag string, params pagination.Params) ([]models.Blog, int64, error)
	ListAll(ctx context.Context, params pagination.Params) ([]models.Blog, int64, error)
	IncrementViewCount(ctx context.Context, id int64) error
	Update(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo blogRepo
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds a blog service backed by the provided repository.
func NewService(repo blogRepo, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("blog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) ListPublished(ctx context.Context, tag string, params pagination.Params) (*ListResult, error) {
	rows, total, err := s.repo.ListPublished(ctx, strings.TrimSpace(tag), params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing published posts")
	}
	return buildList(rows, total, params, true), nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params) (*ListResult, error) {
	rows, total, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing posts")
	}
	return buildList(rows, total, params, false), nil
}

// GetBySlug loads a published post and bumps its view counter. Counter
// failures are logged, never surfaced to the reader.
func (s *service) GetBySlug(ctx context.Context, slug string) (*BlogDTO, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	blog, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading post")
	}
	if blog.Status != enums.BlogStatusPublished {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}

	if err := s.repo.IncrementViewCount(ctx, blog.ID); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "blog_id", blog.ID), "incrementing view count failed", err)
	} else {
		blog.ViewCount++
	}
	return toDTO(blog, false), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*BlogDTO, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = slugify(input.Title)
	}

	blog := &models.Blog{
		Title:         strings.TrimSpace(input.Title),
		Slug:          slug,
		Excerpt:       input.Excerpt,
		Content:       input.Content,
		FeaturedImage: input.FeaturedImage,
		AuthorID:      input.AuthorID,
		Status:        enums.BlogStatusDraft,
		Tags:          normalizeTags(input.Tags),
	}
	if input.Publish {
		now := s.now()
		blog.Status = enums.BlogStatusPublished
		blog.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, blog)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a post with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating post")
	}
	return toDTO(created, false), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*BlogDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post id is required")
	}
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading post")
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must not be empty")
		}
		blog.Title = strings.TrimSpace(*input.Title)
	}
	if input.Excerpt != nil {
		blog.Excerpt = input.Excerpt
	}
	if input.Content != nil {
		blog.Content = *input.Content
	}
	if input.FeaturedImage != nil {
		blog.FeaturedImage = input.FeaturedImage
	}
	if input.Tags != nil {
		blog.Tags = normalizeTags(input.Tags)
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown post status")
		}
		if *input.Status == enums.BlogStatusPublished && blog.Status != enums.BlogStatusPublished {
			now := s.now()
			blog.PublishedAt = &now
		}
		blog.Status = *input.Status
	}

	updated, err := s.repo.Update(ctx, blog)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving post")
	}
	return toDTO(updated, false), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "post id is required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading post")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting post")
	}
	return nil
}

func buildList(rows []models.Blog, total int64, params pagination.Params, excerptOnly bool) *ListResult {
	normalized := params.Normalize()
	result := &ListResult{Blogs: make([]BlogDTO, 0, len(rows))}
	for i := range rows {
		result.Blogs = append(result.Blogs, *toDTO(&rows[i], excerptOnly))
	}
	result.Pagination.Page = int64(normalized.Page)
	result.Pagination.Limit = int64(normalized.Limit)
	result.Pagination.Total = total
	result.Pagination.Pages = pagination.Pages(total, normalized.Limit)
	return result
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func toDTO(blog *models.Blog, excerptOnly bool) *BlogDTO {
	dto := &BlogDTO{
		ID:            blog.ID,
		Title:         blog.Title,
		Slug:          blog.Slug,
		Excerpt:       blog.Excerpt,
		FeaturedImage: blog.FeaturedImage,
		Status:        blog.Status,
		Tags:          append([]string(nil), blog.Tags...),
		ViewCount:     blog.ViewCount,
		PublishedAt:   blog.PublishedAt,
		CreatedAt:     blog.CreatedAt,
	}
	if !excerptOnly {
		dto.Content = blog.Content
	}
	if blog.Author != nil {
		dto.AuthorName = blog.Author.FullName
	}
	return dto
}
