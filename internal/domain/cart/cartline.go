package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/sarunks7/storely-backend/internal/domain/catalog"
	"github.com/sarunks7/storely-backend/internal/domain/user"
)

// CartLine is one (product, variation set) entry with a quantity. Exactly one
// of CartID/UserID is set; the CHECK mirrors what LineOwnerRef enforces in
// code. Within one owner scope at most one active line exists per product and
// exact variation set.
type CartLine struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CartID *uuid.UUID `gorm:"type:uuid;index;check:chk_cart_line_owner,(cart_id IS NULL) <> (user_id IS NULL)" json:"cart_id,omitempty"`
	Cart   *Cart      `gorm:"constraint:OnDelete:CASCADE;foreignKey:CartID;references:ID" json:"-"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

	ProductID uuid.UUID        `gorm:"type:uuid;index;not null" json:"product_id"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`

	Quantity int  `gorm:"not null;default:1;column:quantity" json:"quantity"`
	IsActive bool `gorm:"not null;default:true;column:is_active" json:"is_active"`

	Variations []*catalog.Variation `gorm:"many2many:cart_line_variation" json:"variations,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (CartLine) TableName() string { return "cart_line" }

// VariationIDSet returns the line's variation identifiers as a set.
func (l *CartLine) VariationIDSet() map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(l.Variations))
	for _, v := range l.Variations {
		if v != nil {
			set[v.ID] = struct{}{}
		}
	}
	return set
}
