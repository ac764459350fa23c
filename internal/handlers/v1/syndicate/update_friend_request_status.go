package syndicate

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/operator/actions"
	"github.com/carson-networks/syndicate-server/internal/service"
	"github.com/carson-networks/syndicate-server/internal/storage/friend"
)

// UpdateFriendRequestStatusBody is the request body for updating a friend
// request.
type UpdateFriendRequestStatusBody struct {
	RequestID string `json:"request_id" required:"true" doc:"Friend request UUID"`
	Status    string `json:"status" required:"true" enum:"accepted,rejected,canceled" doc:"Target status"`
}

// UpdateFriendRequestStatusInput is the Huma input for updating a friend
// request.
type UpdateFriendRequestStatusInput struct {
	Body UpdateFriendRequestStatusBody
}

// UpdateFriendRequestStatusResponseBody is the response body for updating a
// friend request.
type UpdateFriendRequestStatusResponseBody struct {
	Updated bool          `json:"updated" doc:"Always true on success"`
	Request FriendRequest `json:"request" doc:"The request after the transition"`
}

// UpdateFriendRequestStatusOutput is the Huma output for updating a friend
// request.
type UpdateFriendRequestStatusOutput struct {
	Body UpdateFriendRequestStatusResponseBody
}

// statusUpdater is the interface for moving friend requests through their
// lifecycle.
type statusUpdater interface {
	UpdateStatus(ctx context.Context, actor auth.Identity, requestID uuid.UUID, rawStatus string) (*service.FriendRequestView, error)
}

// UpdateFriendRequestStatusHandler handles POST /update_friend_request_status/.
type UpdateFriendRequestStatusHandler struct {
	SyndicateService statusUpdater
}

// NewUpdateFriendRequestStatusHandler creates a new UpdateFriendRequestStatusHandler.
func NewUpdateFriendRequestStatusHandler(svc statusUpdater) *UpdateFriendRequestStatusHandler {
	return &UpdateFriendRequestStatusHandler{SyndicateService: svc}
}

// Register registers the update friend request endpoint with the Huma API.
func (h *UpdateFriendRequestStatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-friend-request-status",
		Method:      http.MethodPost,
		Path:        "/update_friend_request_status/",
		Summary:     "Update friend request status",
		Description: "Accepts, rejects, or cancels a pending friend request. Only the addressee may accept or reject and only the sender may cancel.",
		Tags:        []string{"Syndicate"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, h.handle)
}

func (h *UpdateFriendRequestStatusHandler) handle(ctx context.Context, input *UpdateFriendRequestStatusInput) (*UpdateFriendRequestStatusOutput, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "not authenticated")
	}

	requestID, err := uuid.FromString(input.Body.RequestID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid request_id", err)
	}

	view, err := h.SyndicateService.UpdateStatus(ctx, identity, requestID, input.Body.Status)
	if err != nil {
		switch {
		case errors.Is(err, friend.ErrInvalidStatus):
			return nil, huma.NewError(http.StatusBadRequest, "invalid status")
		case errors.Is(err, actions.ErrRequestNotFound):
			return nil, huma.NewError(http.StatusNotFound, "friend request not found")
		case errors.Is(err, friend.ErrNotAllowed):
			return nil, huma.NewError(http.StatusForbidden, "not allowed to change this request")
		case errors.Is(err, friend.ErrTerminalStatus):
			return nil, huma.NewError(http.StatusConflict, "friend request is already settled")
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update friend request", err)
	}

	return &UpdateFriendRequestStatusOutput{Body: UpdateFriendRequestStatusResponseBody{
		Updated: true,
		Request: toAPIFriendRequest(view),
	}}, nil
}
