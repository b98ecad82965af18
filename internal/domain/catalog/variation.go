package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Variation is one (axis, value) option on a product, e.g. color=red.
// Lookups match axis and value case-insensitively.
type Variation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"-"`

	Axis  string `gorm:"not null;index:idx_variation_axis_value;column:axis" json:"axis"`
	Value string `gorm:"not null;index:idx_variation_axis_value;column:value" json:"value"`

	IsActive bool `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Variation) TableName() string { return "variation" }
