package syndicate

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/service"
)

// CreateFriendBody is the request body for sending a friend request.
type CreateFriendBody struct {
	MutualFriendName string `json:"mutual_friend_name" required:"true" minLength:"3" maxLength:"30" doc:"Username to send the request to"`
}

// CreateFriendInput is the Huma input for sending a friend request.
type CreateFriendInput struct {
	Body CreateFriendBody
}

// CreateFriendResponseBody is the response body for sending a friend request.
type CreateFriendResponseBody struct {
	Created bool `json:"created" doc:"False when a pending or accepted pair already exists"`
}

// CreateFriendOutput is the Huma output for sending a friend request.
type CreateFriendOutput struct {
	Body CreateFriendResponseBody
}

// friendRequester is the interface for sending friend requests.
type friendRequester interface {
	CreateFriendRequest(ctx context.Context, requester auth.Identity, mutualFriendName string) (bool, error)
}

// CreateFriendHandler handles POST /create_friend/.
type CreateFriendHandler struct {
	SyndicateService friendRequester
}

// NewCreateFriendHandler creates a new CreateFriendHandler.
func NewCreateFriendHandler(svc friendRequester) *CreateFriendHandler {
	return &CreateFriendHandler{SyndicateService: svc}
}

// Register registers the create friend endpoint with the Huma API.
func (h *CreateFriendHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-friend",
		Method:        http.MethodPost,
		Path:          "/create_friend/",
		Summary:       "Send friend request",
		Description:   "Sends a pending friend request to the named user. Reports created false when an active pair already exists.",
		Tags:          []string{"Syndicate"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, h.handle)
}

func (h *CreateFriendHandler) handle(ctx context.Context, input *CreateFriendInput) (*CreateFriendOutput, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "not authenticated")
	}

	created, err := h.SyndicateService.CreateFriendRequest(ctx, identity, input.Body.MutualFriendName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFriendNotFound):
			return nil, huma.NewError(http.StatusNotFound, "no user with that username")
		case errors.Is(err, service.ErrSelfFriendRequest):
			return nil, huma.NewError(http.StatusBadRequest, "cannot send a friend request to yourself")
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create friend request", err)
	}

	return &CreateFriendOutput{Body: CreateFriendResponseBody{Created: created}}, nil
}
