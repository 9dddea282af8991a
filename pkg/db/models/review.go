package models

import (
	"time"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
)

// Review is a customer rating on a product. At most one review per
// (user, product) pair, enforced by a composite unique index.
type Review struct {
	ID                   int64              `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID            int64              `gorm:"column:product_id;not null;uniqueIndex:idx_reviews_user_product"`
	UserID               int64              `gorm:"column:user_id;not null;uniqueIndex:idx_reviews_user_product"`
	OrderID              *int64             `gorm:"column:order_id"`
	Rating               int                `gorm:"column:rating;not null"`
	Title                *string            `gorm:"column:title"`
	Comment              *string            `gorm:"column:comment"`
	ProductQualityRating *int               `gorm:"column:product_quality_rating"`
	ShippingRating       *int               `gorm:"column:shipping_rating"`
	SellerRating         *int               `gorm:"column:seller_rating"`
	Status               enums.ReviewStatus `gorm:"column:status;not null;default:'pending'"`
	AdminReply           *string            `gorm:"column:admin_reply"`
	Product              *Product           `gorm:"foreignKey:ProductID"`
	User                 *User              `gorm:"foreignKey:UserID"`
	Order                *Order             `gorm:"foreignKey:OrderID"`
	CreatedAt            time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Review) TableName() string { return "reviews" }
