package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
)

// ReturnOrder tracks a product return through its lifecycle states. Each
// return targets one order line; product and quantity are snapshotted from
// it at initiation.
type ReturnOrder struct {
	ID             int64              `gorm:"column:id;primaryKey;autoIncrement"`
	ReturnID       string             `gorm:"column:return_id;uniqueIndex;not null"`
	OrderID        int64              `gorm:"column:order_id;not null;index"`
	OrderItemID    int64              `gorm:"column:order_item_id;not null;index"`
	UserID         int64              `gorm:"column:user_id;not null;index"`
	ProductID      int64              `gorm:"column:product_id;not null"`
	Quantity       int                `gorm:"column:quantity;not null;default:1"`
	Reason         string             `gorm:"column:reason;not null"`
	Status         enums.ReturnStatus `gorm:"column:status;not null;default:'Return Initiated'"`
	RefundAmount   *decimal.Decimal   `gorm:"column:refund_amount;type:numeric(10,2)"`
	TrackingNumber *string            `gorm:"column:tracking_number"`
	Notes          *string            `gorm:"column:notes"`
	ProcessedDate  *time.Time         `gorm:"column:processed_date"`
	Order          *Order             `gorm:"foreignKey:OrderID"`
	User           *User              `gorm:"foreignKey:UserID"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (ReturnOrder) TableName() string { return "return_orders" }
