package returns

import (
	"context"

	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
)

// Repository provides return order persistence.
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

func (r *Repository) Create(ctx context.Context, ret *models.ReturnOrder) (*models.ReturnOrder, error) {
	if err := r.db.WithContext(ctx).Create(ret).Error; err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *Repository) FindByReturnID(ctx context.Context, returnID string) (*models.ReturnOrder, error) {
	var ret models.ReturnOrder
	if err := r.db.WithContext(ctx).First(&ret, "return_id = ?", returnID).Error; err != nil {
		return nil, err
	}
	return &ret, nil
}

// FindOpenByOrderItem returns an unfinished return for the order item, if any.
func (r *Repository) FindOpenByOrderItem(ctx context.Context, orderItemID int64) (*models.ReturnOrder, error) {
	var ret models.ReturnOrder
	err := r.db.WithContext(ctx).
		Where("order_item_id = ?", orderItemID).
		Where("status NOT IN ?", []string{"Returned", "Scrapped", "Cancelled"}).
		First(&ret).Error
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

// List pages return orders newest first. Zero userID and empty status list all.
func (r *Repository) List(ctx context.Context, userID int64, status string, params pagination.Params) ([]models.ReturnOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReturnOrder{})
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	normalized := params.Normalize()
	var rows []models.ReturnOrder
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

func (r *Repository) Update(ctx context.Context, ret *models.ReturnOrder) (*models.ReturnOrder, error) {
	if err := r.db.WithContext(ctx).Save(ret).Error; err != nil {
		return nil, err
	}
	return ret, nil
}
