package syndicate

import (
	"time"

	"github.com/carson-networks/syndicate-server/internal/service"
)

// Member is a user reference in syndicate responses.
type Member struct {
	UserID   string `json:"user_id" doc:"User UUID"`
	Username string `json:"username" doc:"Username"`
}

// Friend is one accepted member of the user's syndicate roster.
type Friend struct {
	UserID   string `json:"user_id" doc:"User UUID"`
	Username string `json:"username" doc:"Username"`
	Email    string `json:"email" doc:"Email address"`
	Since    string `json:"since" doc:"RFC3339 time the request was accepted"`
}

// FriendRequest is a friend request seen from the authenticated user's side.
type FriendRequest struct {
	RequestID   string `json:"request_id" doc:"Request UUID"`
	Status      string `json:"status" doc:"pending, accepted, rejected, or canceled"`
	RequestType string `json:"request_type" enum:"sent,received" doc:"Direction relative to the authenticated user"`
	OtherUser   Member `json:"other_user" doc:"The user on the other side of the request"`
	CreatedAt   string `json:"created_at" doc:"RFC3339 creation time"`
}

func toAPIFriendRequest(view *service.FriendRequestView) FriendRequest {
	return FriendRequest{
		RequestID:   view.RequestID.String(),
		Status:      string(view.Status),
		RequestType: view.RequestType,
		OtherUser: Member{
			UserID:   view.OtherUser.UserID.String(),
			Username: view.OtherUser.Username,
		},
		CreatedAt: view.CreatedAt.Format(time.RFC3339),
	}
}

func toAPIFriendRequests(views []service.FriendRequestView) []FriendRequest {
	converted := make([]FriendRequest, len(views))
	for i := range views {
		converted[i] = toAPIFriendRequest(&views[i])
	}
	return converted
}

func toAPIFriends(friends []service.SyndicateFriend) []Friend {
	converted := make([]Friend, len(friends))
	for i, friend := range friends {
		converted[i] = Friend{
			UserID:   friend.UserID.String(),
			Username: friend.Username,
			Email:    friend.Email,
			Since:    friend.Since.Format(time.RFC3339),
		}
	}
	return converted
}
