package models

import (
	"time"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
)

// User covers both storefront customers and back-office admins.
type User struct {
	ID           int64            `gorm:"column:id;primaryKey;autoIncrement"`
	FullName     string           `gorm:"column:full_name;not null"`
	Username     *string          `gorm:"column:username;uniqueIndex"`
	Email        string           `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string           `gorm:"column:password_hash;not null"`
	Phone        *string          `gorm:"column:phone"`
	Role         enums.UserRole   `gorm:"column:role;not null;default:'customer'"`
	Status       enums.UserStatus `gorm:"column:status;not null;default:'active'"`
	Avatar       *string          `gorm:"column:avatar"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (User) TableName() string { return "users" }
