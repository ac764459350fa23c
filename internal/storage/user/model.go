package user

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a user record.
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PhoneNumber  string    `db:"phone_number"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserCreate is the input for creating a new user.
type UserCreate struct {
	Username     string
	Email        string
	PhoneNumber  string
	PasswordHash string
}
