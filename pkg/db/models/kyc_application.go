package models

import (
	"time"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
)

// KYCApplication is an identity verification request. A user may hold
// at most one application that is pending or accepted.
type KYCApplication struct {
	ID              int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	ApplicationID   string                `gorm:"column:application_id;uniqueIndex;not null"`
	UserID          int64                 `gorm:"column:user_id;not null;index"`
	FullName        string                `gorm:"column:full_name;not null"`
	DateOfBirth     *time.Time            `gorm:"column:date_of_birth"`
	Address         *string               `gorm:"column:address"`
	DocumentType    enums.KYCDocumentType `gorm:"column:document_type;not null"`
	DocumentNumber  string                `gorm:"column:document_number;not null"`
	FrontImageURL   *string               `gorm:"column:front_image_url"`
	BackImageURL    *string               `gorm:"column:back_image_url"`
	SelfieImageURL  *string               `gorm:"column:selfie_image_url"`
	Status          enums.KYCStatus       `gorm:"column:status;not null;default:'pending'"`
	RejectionReason *string               `gorm:"column:rejection_reason"`
	ReviewedBy      *int64                `gorm:"column:reviewed_by"`
	ReviewedAt      *time.Time            `gorm:"column:reviewed_at"`
	User            *User                 `gorm:"foreignKey:UserID"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (KYCApplication) TableName() string { return "kyc_applications" }
