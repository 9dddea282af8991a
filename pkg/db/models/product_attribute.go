package models

import "time"

// ProductAttribute is a selectable option on a product, e.g. color=red.
// The (name, value) pairs drive cart line identity for configured products.
type ProductAttribute struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID      int64     `gorm:"column:product_id;not null;index"`
	AttributeName  string    `gorm:"column:attribute_name;not null"`
	AttributeValue string    `gorm:"column:attribute_value;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ProductAttribute) TableName() string { return "product_attributes" }
