package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
)

// Blog is an editorial post published on the storefront.
type Blog struct {
	ID            int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Title         string           `gorm:"column:title;not null"`
	Slug          string           `gorm:"column:slug;uniqueIndex;not null"`
	Excerpt       *string          `gorm:"column:excerpt"`
	Content       string           `gorm:"column:content;not null"`
	FeaturedImage *string          `gorm:"column:featured_image"`
	AuthorID      *int64           `gorm:"column:author_id"`
	Status        enums.BlogStatus `gorm:"column:status;not null;default:'draft'"`
	Tags          pq.StringArray   `gorm:"column:tags;type:text[]"`
	ViewCount     int64            `gorm:"column:view_count;not null;default:0"`
	PublishedAt   *time.Time       `gorm:"column:published_at"`
	Author        *User            `gorm:"foreignKey:AuthorID"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Blog) TableName() string { return "blogs" }
