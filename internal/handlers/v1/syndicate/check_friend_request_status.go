package syndicate

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/logging"
	"github.com/carson-networks/syndicate-server/internal/service"
)

// FriendRequestGroups groups the user's pending requests by direction.
type FriendRequestGroups struct {
	Sent     []FriendRequest `json:"sent" doc:"Pending requests the user sent"`
	Received []FriendRequest `json:"received" doc:"Pending requests addressed to the user"`
	All      []FriendRequest `json:"all" doc:"Both directions"`
}

// CheckFriendRequestStatusResponseBody is the response body for the pending
// request listing.
type CheckFriendRequestStatusResponseBody struct {
	Requests FriendRequestGroups `json:"requests" doc:"Pending friend requests grouped by direction"`
}

// CheckFriendRequestStatusOutput is the Huma output for the pending request
// listing.
type CheckFriendRequestStatusOutput struct {
	Body CheckFriendRequestStatusResponseBody
}

// requestLister is the interface for listing pending friend requests.
type requestLister interface {
	Requests(ctx context.Context, identity auth.Identity) (*service.FriendRequests, error)
}

// CheckFriendRequestStatusHandler handles GET /check_friend_request_status/.
type CheckFriendRequestStatusHandler struct {
	SyndicateService requestLister
}

// NewCheckFriendRequestStatusHandler creates a new CheckFriendRequestStatusHandler.
func NewCheckFriendRequestStatusHandler(svc requestLister) *CheckFriendRequestStatusHandler {
	return &CheckFriendRequestStatusHandler{SyndicateService: svc}
}

// Register registers the pending request listing with the Huma API.
func (h *CheckFriendRequestStatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "check-friend-request-status",
		Method:      http.MethodGet,
		Path:        "/check_friend_request_status/",
		Summary:     "Check friend request status",
		Description: "Returns the user's pending friend requests grouped into sent and received.",
		Tags:        []string{"Syndicate"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, h.handle)
}

func (h *CheckFriendRequestStatusHandler) handle(ctx context.Context, _ *struct{}) (*CheckFriendRequestStatusOutput, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "not authenticated")
	}

	requests, err := h.SyndicateService.Requests(ctx, identity)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list friend requests", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("pendingRequestCount", len(requests.All))
	}

	return &CheckFriendRequestStatusOutput{Body: CheckFriendRequestStatusResponseBody{
		Requests: FriendRequestGroups{
			Sent:     toAPIFriendRequests(requests.Sent),
			Received: toAPIFriendRequests(requests.Received),
			All:      toAPIFriendRequests(requests.All),
		},
	}}, nil
}
