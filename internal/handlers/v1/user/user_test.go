package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/operator/actions"
	"github.com/carson-networks/syndicate-server/internal/service"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, input service.RegisterInput) (*service.User, error) {
	args := m.Called(ctx, input)
	created, _ := args.Get(0).(*service.User)
	return created, args.Error(1)
}

func (m *mockUserService) Authenticate(ctx context.Context, username, password string) (auth.TokenPair, *service.User, error) {
	args := m.Called(ctx, username, password)
	loggedIn, _ := args.Get(1).(*service.User)
	return args.Get(0).(auth.TokenPair), loggedIn, args.Error(2)
}

func newTestAPI(t *testing.T, svc *mockUserService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewLoginHandler(svc).Register(api)
	NewRegisterHandler(svc).Register(api)
	return api
}

func sampleUser(username string) *service.User {
	return &service.User{
		ID:          uuid.Must(uuid.NewV4()),
		Username:    username,
		Email:       username + "@example.com",
		PhoneNumber: "5551234567",
		CreatedAt:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

// -- register --

func TestHTTP_Register_Success(t *testing.T) {
	created := sampleUser("alice")

	mockSvc := new(mockUserService)
	mockSvc.On("Register", mock.Anything, service.RegisterInput{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "hunter2hunter2",
		PhoneNumber: "5551234567",
	}).Return(created, nil)

	resp := newTestAPI(t, mockSvc).Post("/register/", RegisterBody{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "hunter2hunter2",
		PhoneNumber: "5551234567",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body RegisterResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Created)
	assert.Equal(t, created.ID.String(), body.User.UserID)
	assert.Equal(t, "alice", body.User.Username)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Register_UsernameTaken(t *testing.T) {
	mockSvc := new(mockUserService)
	mockSvc.On("Register", mock.Anything, mock.Anything).
		Return((*service.User)(nil), actions.ErrUsernameTaken)

	resp := newTestAPI(t, mockSvc).Post("/register/", RegisterBody{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Register_PasswordTooShort(t *testing.T) {
	mockSvc := new(mockUserService)

	// Huma's minLength validation rejects the password before the handler runs.
	resp := newTestAPI(t, mockSvc).Post("/register/", RegisterBody{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Register")
}

func TestHTTP_Register_InvalidPhoneNumber(t *testing.T) {
	mockSvc := new(mockUserService)

	resp := newTestAPI(t, mockSvc).Post("/register/", RegisterBody{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "hunter2hunter2",
		PhoneNumber: "call-me-maybe",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Register")
}

// -- login --

func TestHTTP_Login_Success(t *testing.T) {
	loggedIn := sampleUser("alice")

	mockSvc := new(mockUserService)
	mockSvc.On("Authenticate", mock.Anything, "alice", "hunter2hunter2").
		Return(auth.TokenPair{Access: "access-token", Refresh: "refresh-token"}, loggedIn, nil)

	resp := newTestAPI(t, mockSvc).Post("/login/", LoginBody{
		Username: "alice",
		Password: "hunter2hunter2",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body LoginResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "access-token", body.Access)
	assert.Equal(t, "refresh-token", body.Refresh)
	assert.Equal(t, "alice", body.User.Username)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Login_InvalidCredentials(t *testing.T) {
	mockSvc := new(mockUserService)
	mockSvc.On("Authenticate", mock.Anything, "alice", "wrong-password").
		Return(auth.TokenPair{}, (*service.User)(nil), service.ErrInvalidCredentials)

	resp := newTestAPI(t, mockSvc).Post("/login/", LoginBody{
		Username: "alice",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Login_ServiceError(t *testing.T) {
	mockSvc := new(mockUserService)
	mockSvc.On("Authenticate", mock.Anything, "alice", "hunter2hunter2").
		Return(auth.TokenPair{}, (*service.User)(nil), errors.New("database unavailable"))

	resp := newTestAPI(t, mockSvc).Post("/login/", LoginBody{
		Username: "alice",
		Password: "hunter2hunter2",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
