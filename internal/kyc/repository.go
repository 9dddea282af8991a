package kyc

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
)

// Repository provides KYC application persistence.
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

func (r *Repository) Create(ctx context.Context, app *models.KYCApplication) (*models.KYCApplication, error) {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.KYCApplication, error) {
	var app models.KYCApplication
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *Repository) FindByApplicationID(ctx context.Context, applicationID string) (*models.KYCApplication, error) {
	var app models.KYCApplication
	if err := r.db.WithContext(ctx).First(&app, "application_id = ?", applicationID).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindActiveByUser returns the user's pending or accepted application, if any.
func (r *Repository) FindActiveByUser(ctx context.Context, userID int64) (*models.KYCApplication, error) {
	var app models.KYCApplication
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []string{
			enums.KYCStatusPending.String(),
			enums.KYCStatusAccepted.String(),
		}).
		Order("created_at DESC").
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// List pages applications, newest first. Empty filters list all.
func (r *Repository) List(ctx context.Context, status, documentType string, params pagination.Params) ([]models.KYCApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.KYCApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if documentType != "" {
		query = query.Where("document_type = ?", documentType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	normalized := params.Normalize()
	var rows []models.KYCApplication
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

// CountByStatus returns application counts keyed by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.KYCApplication{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountSubmittedSince counts applications created at or after the cutoff.
func (r *Repository) CountSubmittedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.KYCApplication{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountByDocumentType returns application counts keyed by document type.
func (r *Repository) CountByDocumentType(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		DocumentType string
		Count        int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.KYCApplication{}).
		Select("document_type, COUNT(*) AS count").
		Group("document_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.DocumentType] = row.Count
	}
	return counts, nil
}

func (r *Repository) Update(ctx context.Context, app *models.KYCApplication) (*models.KYCApplication, error) {
	if err := r.db.WithContext(ctx).Save(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}
