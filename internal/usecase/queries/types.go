package queries

import (
	"github.com/google/uuid"
)

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// RoomView represents read-optimized room data
type RoomView struct {
	ID         uuid.UUID `json:"id"`
	RoomNumber string    `json:"room_number"`
	RoomType   string    `json:"room_type"`
	IsActive   bool      `json:"is_active"`
}
