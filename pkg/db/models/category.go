package models

import "time"

// Category groups catalog listings; categories may nest one level via ParentID.
type Category struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;uniqueIndex;not null"`
	Description *string   `gorm:"column:description"`
	Image       *string   `gorm:"column:image"`
	ParentID    *int64    `gorm:"column:parent_id"`
	Status      string    `gorm:"column:status;not null;default:'active'"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (Category) TableName() string { return "categories" }
