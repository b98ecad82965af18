package cart

import (
	"time"

	"github.com/google/uuid"
)

// Cart exists only for anonymous owners: it pins a session key to a row the
// cart lines can reference. Authenticated owners attach lines to the user
// directly and never get a Cart row.
type Cart struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionKey string    `gorm:"uniqueIndex;not null;column:session_key" json:"session_key"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Cart) TableName() string { return "cart" }
