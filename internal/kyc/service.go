package kyc

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/types"
)

// ApplicationDTO is the KYC application read model.
type ApplicationDTO struct {
	ID              int64                 `json:"id"`
	ApplicationID   string                `json:"applicationId"`
	UserID          int64                 `json:"userId"`
	FullName        string                `json:"fullName"`
	DateOfBirth     *time.Time            `json:"dateOfBirth,omitempty"`
	Address         *string               `json:"address,omitempty"`
	DocumentType    enums.KYCDocumentType `json:"documentType"`
	DocumentNumber  string                `json:"documentNumber"`
	FrontImageURL   *string               `json:"frontImageUrl,omitempty"`
	BackImageURL    *string               `json:"backImageUrl,omitempty"`
	SelfieImageURL  *string               `json:"selfieImageUrl,omitempty"`
	Status          enums.KYCStatus       `json:"status"`
	RejectionReason *string               `json:"rejectionReason,omitempty"`
	ReviewedAt      *time.Time            `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// Stats summarizes applications per review state, plus submission volume
// over the trailing week and a breakdown by document type.
type Stats struct {
	Total          int64            `json:"total"`
	Pending        int64            `json:"pending"`
	Accepted       int64            `json:"accepted"`
	Rejected       int64            `json:"rejected"`
	RecentWeek     int64            `json:"recentWeek"`
	ByDocumentType map[string]int64 `json:"byDocumentType"`
}

// ListResult is one page of applications plus its pagination envelope.
type ListResult struct {
	Applications []ApplicationDTO `json:"applications"`
	Pagination   types.Pagination `json:"pagination"`
}

// SubmitInput is the payload to open a KYC application. Image URLs point
// at documents the client already uploaded elsewhere.
type SubmitInput struct {
	FullName       string
	DateOfBirth    *time.Time
	Address        *string
	DocumentType   enums.KYCDocumentType
	DocumentNumber string
	FrontImageURL  *string
	BackImageURL   *string
	SelfieImageURL *string
}

// ReviewInput carries a moderator's decision.
type ReviewInput struct {
	Status          enums.KYCStatus
	RejectionReason *string
	ReviewerID      int64
}

// Service exposes KYC submission and review.
type Service interface {
	Submit(ctx context.Context, userID int64, input SubmitInput) (*ApplicationDTO, error)
	StatusForUser(ctx context.Context, userID int64) (*ApplicationDTO, error)
	Get(ctx context.Context, applicationID string) (*ApplicationDTO, error)
	List(ctx context.Context, status, documentType string, params pagination.Params) (*ListResult, error)
	Review(ctx context.Context, applicationID string, input ReviewInput) (*ApplicationDTO, error)
	Stats(ctx context.Context) (*Stats, error)
}

type kycRepo interface {
	Create(ctx context.Context, app *models.KYCApplication) (*models.KYCApplication, error)
	FindByApplicationID(ctx context.Context, applicationID string) (*models.KYCApplication, error)
	FindActiveByUser(ctx context.Context, userID int64) (*models.KYCApplication, error)
	List(ctx context.Context, status, documentType string, params pagination.Params) ([]models.KYCApplication, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountSubmittedSince(ctx context.Context, since time.Time) (int64, error)
	CountByDocumentType(ctx context.Context) (map[string]int64, error)
	Update(ctx context.Context, app *models.KYCApplication) (*models.KYCApplication, error)
}

type service struct {
	repo kycRepo
	now  func() time.Time
}

// NewService builds a KYC service backed by the provided repository.
func NewService(repo kycRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("kyc repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Submit opens a new application. A user with a pending or accepted
// application may not open another; a rejected one may reapply.
func (s *service) Submit(ctx context.Context, userID int64, input SubmitInput) (*ApplicationDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	if !input.DocumentType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown document type")
	}
	if strings.TrimSpace(input.DocumentNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document number is required")
	}

	active, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking existing application")
	}
	if active != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("an application with status %q already exists", active.Status))
	}

	created, err := s.repo.Create(ctx, &models.KYCApplication{
		ApplicationID:  newApplicationID(s.now()),
		UserID:         userID,
		FullName:       strings.TrimSpace(input.FullName),
		DateOfBirth:    input.DateOfBirth,
		Address:        input.Address,
		DocumentType:   input.DocumentType,
		DocumentNumber: strings.TrimSpace(input.DocumentNumber),
		FrontImageURL:  input.FrontImageURL,
		BackImageURL:   input.BackImageURL,
		SelfieImageURL: input.SelfieImageURL,
		Status:         enums.KYCStatusPending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating application")
	}
	return toDTO(created), nil
}

// StatusForUser returns the user's most recent active application.
func (s *service) StatusForUser(ctx context.Context, userID int64) (*ApplicationDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	app, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active application")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading application")
	}
	return toDTO(app), nil
}

func (s *service) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	if strings.TrimSpace(applicationID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application id is required")
	}
	app, err := s.repo.FindByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading application")
	}
	return toDTO(app), nil
}

func (s *service) List(ctx context.Context, status, documentType string, params pagination.Params) (*ListResult, error) {
	if status != "" {
		if _, err := enums.ParseKYCStatus(status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown status filter")
		}
	}
	if documentType != "" {
		if _, err := enums.ParseKYCDocumentType(documentType); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown document type filter")
		}
	}
	rows, total, err := s.repo.List(ctx, status, documentType, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing applications")
	}

	normalized := params.Normalize()
	result := &ListResult{Applications: make([]ApplicationDTO, 0, len(rows))}
	for i := range rows {
		result.Applications = append(result.Applications, *toDTO(&rows[i]))
	}
	result.Pagination.Page = int64(normalized.Page)
	result.Pagination.Limit = int64(normalized.Limit)
	result.Pagination.Total = total
	result.Pagination.Pages = pagination.Pages(total, normalized.Limit)
	return result, nil
}

// Review accepts or rejects a pending application. Rejection requires a
// reason; settled applications may not be re-reviewed.
func (s *service) Review(ctx context.Context, applicationID string, input ReviewInput) (*ApplicationDTO, error) {
	if strings.TrimSpace(applicationID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application id is required")
	}
	if input.Status != enums.KYCStatusAccepted && input.Status != enums.KYCStatusRejected {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be accepted or rejected")
	}
	if input.Status == enums.KYCStatusRejected &&
		(input.RejectionReason == nil || strings.TrimSpace(*input.RejectionReason) == "") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rejection reason is required")
	}

	app, err := s.repo.FindByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading application")
	}
	if app.Status != enums.KYCStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("application already %s", app.Status))
	}

	now := s.now()
	app.Status = input.Status
	app.ReviewedAt = &now
	if input.ReviewerID > 0 {
		app.ReviewedBy = &input.ReviewerID
	}
	if input.Status == enums.KYCStatusRejected {
		app.RejectionReason = input.RejectionReason
	} else {
		app.RejectionReason = nil
	}

	updated, err := s.repo.Update(ctx, app)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving review")
	}
	return toDTO(updated), nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting applications")
	}
	recent, err := s.repo.CountSubmittedSince(ctx, s.now().AddDate(0, 0, -7))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting recent applications")
	}
	byType, err := s.repo.CountByDocumentType(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting by document type")
	}
	stats := &Stats{
		Pending:        counts[enums.KYCStatusPending.String()],
		Accepted:       counts[enums.KYCStatusAccepted.String()],
		Rejected:       counts[enums.KYCStatusRejected.String()],
		RecentWeek:     recent,
		ByDocumentType: byType,
	}
	stats.Total = stats.Pending + stats.Accepted + stats.Rejected
	return stats, nil
}

// newApplicationID builds a public reference like KYC-1718211550-4821.
func newApplicationID(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("KYC-%d-%04d", now.Unix(), suffix)
}

func toDTO(app *models.KYCApplication) *ApplicationDTO {
	return &ApplicationDTO{
		ID:              app.ID,
		ApplicationID:   app.ApplicationID,
		UserID:          app.UserID,
		FullName:        app.FullName,
		DateOfBirth:     app.DateOfBirth,
		Address:         app.Address,
		DocumentType:    app.DocumentType,
		DocumentNumber:  app.DocumentNumber,
		FrontImageURL:   app.FrontImageURL,
		BackImageURL:    app.BackImageURL,
		SelfieImageURL:  app.SelfieImageURL,
		Status:          app.Status,
		RejectionReason: app.RejectionReason,
		ReviewedAt:      app.ReviewedAt,
		CreatedAt:       app.CreatedAt,
	}
}
