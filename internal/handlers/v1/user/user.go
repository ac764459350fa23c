package user

import (
	"time"

	"github.com/carson-networks/syndicate-server/internal/service"
)

// User is the API response model for a user.
type User struct {
	UserID      string `json:"user_id" doc:"User UUID"`
	Username    string `json:"username" doc:"Unique username"`
	Email       string `json:"email" doc:"Email address"`
	PhoneNumber string `json:"phone_number,omitempty" doc:"Phone number, digits only"`
	CreatedAt   string `json:"created_at" doc:"RFC3339 creation time"`
}

func toAPIUser(u *service.User) User {
	return User{
		UserID:      u.ID.String(),
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
