package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/syndicate-server/internal/operator/actions"
	"github.com/carson-networks/syndicate-server/internal/service"
)

// RegisterBody is the request body for creating an account.
type RegisterBody struct {
	Username    string `json:"username" required:"true" minLength:"3" maxLength:"30" doc:"Unique username"`
	Email       string `json:"email" required:"true" format:"email" doc:"Email address"`
	Password    string `json:"password" required:"true" minLength:"8" doc:"Password, at least 8 characters"`
	PhoneNumber string `json:"phone_number,omitempty" pattern:"^[0-9]{7,15}$" doc:"Phone number, digits only"`
}

// RegisterInput is the Huma input for creating an account.
type RegisterInput struct {
	Body RegisterBody
}

// RegisterResponseBody is the response body for creating an account.
type RegisterResponseBody struct {
	Created bool `json:"created" doc:"Always true on success"`
	User    User `json:"user" doc:"The created user"`
}

// RegisterOutput is the Huma output for creating an account.
type RegisterOutput struct {
	Body RegisterResponseBody
}

// registrar is the interface for creating accounts.
type registrar interface {
	Register(ctx context.Context, input service.RegisterInput) (*service.User, error)
}

// RegisterHandler handles POST /register/.
type RegisterHandler struct {
	UserService registrar
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc registrar) *RegisterHandler {
	return &RegisterHandler{UserService: svc}
}

// Register registers the register endpoint with the Huma API.
func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/register/",
		Summary:       "Register",
		Description:   "Creates a new user account.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	created, err := h.UserService.Register(ctx, service.RegisterInput{
		Username:    input.Body.Username,
		Email:       input.Body.Email,
		Password:    input.Body.Password,
		PhoneNumber: input.Body.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, actions.ErrUsernameTaken) {
			return nil, huma.NewError(http.StatusConflict, "username is already taken")
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to register", err)
	}

	return &RegisterOutput{Body: RegisterResponseBody{
		Created: true,
		User:    toAPIUser(created),
	}}, nil
}
