package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/syndicate-server/internal/storage"
	"github.com/carson-networks/syndicate-server/internal/storage/user"
)

var ErrUsernameTaken = errors.New("username is already taken")

// RegisterUser creates a user account. The uniqueness check runs in the
// same transaction as the insert.
type RegisterUser struct {
	Username     string
	Email        string
	PhoneNumber  string
	PasswordHash string

	// CreatedID is set on success.
	CreatedID uuid.UUID
}

func (a *RegisterUser) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.User.FindByUsername(ctx, a.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	userID, err := writer.User.Insert(ctx, &user.UserCreate{
		Username:     a.Username,
		Email:        a.Email,
		PhoneNumber:  a.PhoneNumber,
		PasswordHash: a.PasswordHash,
	})
	if err != nil {
		return err
	}

	a.CreatedID = userID
	return nil
}
