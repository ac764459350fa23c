package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/operator/actions"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// User represents a user in the service layer. The password hash never
// leaves the storage layer.
type User struct {
	ID          uuid.UUID
	Username    string
	Email       string
	PhoneNumber string
	CreatedAt   time.Time
}

// RegisterInput is the input for creating a user account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
}

// UserService handles registration and login.
type UserService struct {
	users     userStore
	processor actionProcessor
	issuer    *auth.Issuer
}

// NewUserService creates a new UserService.
func NewUserService(users userStore, processor actionProcessor, issuer *auth.Issuer) *UserService {
	return &UserService{
		users:     users,
		processor: processor,
		issuer:    issuer,
	}
}

// Register creates a user account. Fails with actions.ErrUsernameTaken when
// the username is already in use.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	action := &actions.RegisterUser{
		Username:     input.Username,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: hash,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	row, err := s.users.FindByID(ctx, action.CreatedID)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:          row.ID,
		Username:    row.Username,
		Email:       row.Email,
		PhoneNumber: row.PhoneNumber,
		CreatedAt:   row.CreatedAt,
	}, nil
}

// Authenticate checks the credentials and mints a token pair. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (auth.TokenPair, *User, error) {
	row, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return auth.TokenPair{}, nil, err
	}
	if row == nil || !auth.CheckPassword(row.PasswordHash, password) {
		return auth.TokenPair{}, nil, ErrInvalidCredentials
	}

	pair, err := s.issuer.Mint(auth.Identity{UserID: row.ID, Username: row.Username})
	if err != nil {
		return auth.TokenPair{}, nil, err
	}

	return pair, &User{
		ID:          row.ID,
		Username:    row.Username,
		Email:       row.Email,
		PhoneNumber: row.PhoneNumber,
		CreatedAt:   row.CreatedAt,
	}, nil
}
