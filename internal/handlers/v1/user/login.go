package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/service"
)

// LoginBody is the request body for logging in.
type LoginBody struct {
	Username string `json:"username" required:"true" minLength:"1" doc:"Username"`
	Password string `json:"password" required:"true" minLength:"1" doc:"Password"`
}

// LoginInput is the Huma input for logging in.
type LoginInput struct {
	Body LoginBody
}

// LoginResponseBody is the response body for logging in.
type LoginResponseBody struct {
	Access  string `json:"access" doc:"Bearer access token"`
	Refresh string `json:"refresh" doc:"Refresh token"`
	User    User   `json:"user" doc:"The authenticated user"`
}

// LoginOutput is the Huma output for logging in.
type LoginOutput struct {
	Body LoginResponseBody
}

// authenticator is the interface for checking credentials.
type authenticator interface {
	Authenticate(ctx context.Context, username, password string) (auth.TokenPair, *service.User, error)
}

// LoginHandler handles POST /login/.
type LoginHandler struct {
	UserService authenticator
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(svc authenticator) *LoginHandler {
	return &LoginHandler{UserService: svc}
}

// Register registers the login endpoint with the Huma API.
func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/login/",
		Summary:     "Log in",
		Description: "Checks credentials and returns an access/refresh token pair.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	pair, loggedIn, err := h.UserService.Authenticate(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return nil, huma.NewError(http.StatusUnauthorized, "invalid username or password")
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to log in", err)
	}

	return &LoginOutput{Body: LoginResponseBody{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User:    toAPIUser(loggedIn),
	}}, nil
}
