package blogs

import (
	"context"

	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
)

// Repository provides blog post persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).Preload("Author").First(&blog, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).Preload("Author").First(&blog, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// ListPublished pages published posts, most recently published first. A
// non-empty tag narrows to posts carrying it.
func (r *Repository) ListPublished(ctx context.Context, tag string, params pagination.Params) ([]models.Blog, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("status = ?", enums.BlogStatusPublished)
	if tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	normalized := params.Normalize()
	var rows []models.Blog
	err := query.
		Order("published_at DESC").
		Limit(normalized.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListAll pages posts in every status for editorial screens, newest first.
func (r *Repository) ListAll(ctx context.Context, params pagination.Params) ([]models.Blog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Blog{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	normalized := params.Normalize()
	var rows []models.Blog
	err := query.
		Order("created_at DESC").
		Limit(normalized.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// IncrementViewCount bumps the counter in place without racing readers.
func (r *Repository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *Repository) Update(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Blog{}, "id = ?", id).Error
}
