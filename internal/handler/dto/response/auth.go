package response

import (
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func FromAuthorizedUser(rm *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{
		ID:    rm.ID,
		Email: rm.Email,
		Role:  rm.Role,
	}
}
