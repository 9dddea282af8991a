package reviews

import (
	"context"

	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
)

// Repository provides review persistence.
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

func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListApproved returns the approved page for a product, newest first,
// plus the unpaged approved count.
func (r *Repository) ListApproved(ctx context.Context, productID int64, params pagination.Params) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("product_id = ? AND status = ?", productID, enums.ReviewStatusApproved)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	normalized := params.Normalize()
	var rows []models.Review
	err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(normalized.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Aggregate returns the approved review count and mean rating for a product.
func (r *Repository) Aggregate(ctx context.Context, productID int64) (int64, float64, error) {
	var agg struct {
		Count int64
		Avg   float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("product_id = ? AND status = ?", productID, enums.ReviewStatusApproved).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Count, agg.Avg, nil
}

func (r *Repository) Moderate(ctx context.Context, id int64, status string, adminReply *string) error {
	updates := map[string]any{"status": status}
	if adminReply != nil {
		updates["admin_reply"] = *adminReply
	}
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error
}
