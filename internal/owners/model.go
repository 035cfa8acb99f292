package owners

import (
	"time"

	"github.com/google/uuid"
)

// Owner is one restaurant owner account.
type Owner struct {
	ID             uuid.UUID
	Phone          string
	PasswordHash   string
	RestaurantName string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
