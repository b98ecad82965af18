package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Product is read-only reference data for the cart subsystem: the catalog
// service looks rows up, nothing here mutates them.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Description string    `gorm:"column:description" json:"description"`

	// PriceCents keeps money in integer cents end to end.
	PriceCents  int64 `gorm:"not null;column:price_cents" json:"price_cents"`
	Stock       int   `gorm:"not null;default:0;column:stock" json:"stock"`
	IsAvailable bool  `gorm:"not null;default:true;column:is_available" json:"is_available"`

	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	Variations []*Variation `gorm:"foreignKey:ProductID" json:"variations,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "product" }
