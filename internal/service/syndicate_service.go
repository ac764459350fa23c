package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/operator/actions"
	"github.com/carson-networks/syndicate-server/internal/storage/friend"
)

var (
	ErrFriendNotFound    = errors.New("no user with that username")
	ErrSelfFriendRequest = errors.New("cannot send a friend request to yourself")
)

// friendStore is the slice of the storage reader the syndicate service
// depends on.
type friendStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*friend.FriendRequest, error)
	ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]*friend.FriendRequest, error)
	ListAccepted(ctx context.Context, userID uuid.UUID) ([]*friend.FriendRequest, error)
}

// SyndicateFriend is one accepted member of a user's syndicate roster.
type SyndicateFriend struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Since    time.Time
}

// SyndicateData is the accepted-friend roster for a user.
type SyndicateData struct {
	User    SyndicateMember
	Friends []SyndicateFriend
}

// FriendRequestView is a friend request seen from one user's side.
type FriendRequestView struct {
	RequestID   uuid.UUID
	Status      friend.Status
	RequestType string // "sent" or "received"
	OtherUser   SyndicateMember
	CreatedAt   time.Time
}

// FriendRequests groups a user's pending requests by direction.
type FriendRequests struct {
	Sent     []FriendRequestView
	Received []FriendRequestView
	All      []FriendRequestView
}

// SyndicateService handles the friend roster and friend request lifecycle.
type SyndicateService struct {
	friends   friendStore
	users     userStore
	processor actionProcessor
}

// NewSyndicateService creates a new SyndicateService.
func NewSyndicateService(friends friendStore, users userStore, processor actionProcessor) *SyndicateService {
	return &SyndicateService{
		friends:   friends,
		users:     users,
		processor: processor,
	}
}

// Roster returns the user's accepted syndicate members.
func (s *SyndicateService) Roster(ctx context.Context, identity auth.Identity) (*SyndicateData, error) {
	accepted, err := s.friends.ListAccepted(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	otherIDs := make([]uuid.UUID, 0, len(accepted))
	sinceByID := make(map[uuid.UUID]time.Time, len(accepted))
	for _, request := range accepted {
		otherID := request.RequesterID
		if otherID == identity.UserID {
			otherID = request.RequestedID
		}
		otherIDs = append(otherIDs, otherID)
		sinceByID[otherID] = request.UpdatedAt
	}

	userRows, err := s.users.ListByIDs(ctx, otherIDs)
	if err != nil {
		return nil, err
	}

	data := &SyndicateData{
		User: SyndicateMember{UserID: identity.UserID, Username: identity.Username},
	}
	for _, row := range userRows {
		data.Friends = append(data.Friends, SyndicateFriend{
			UserID:   row.ID,
			Username: row.Username,
			Email:    row.Email,
			Since:    sinceByID[row.ID],
		})
	}
	return data, nil
}

// CreateFriendRequest sends a pending request to the named user. Returns
// false without error when an active pair already exists.
func (s *SyndicateService) CreateFriendRequest(ctx context.Context, requester auth.Identity, mutualFriendName string) (bool, error) {
	target, err := s.users.FindByUsername(ctx, mutualFriendName)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, ErrFriendNotFound
	}
	if target.ID == requester.UserID {
		return false, ErrSelfFriendRequest
	}

	action := &actions.CreateFriendRequest{
		RequesterID: requester.UserID,
		RequestedID: target.ID,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return false, err
	}
	return action.Created, nil
}

// Requests returns the user's pending requests grouped by direction.
func (s *SyndicateService) Requests(ctx context.Context, identity auth.Identity) (*FriendRequests, error) {
	pending, err := s.friends.ListPendingForUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, identity.UserID, pending)
	if err != nil {
		return nil, err
	}

	requests := &FriendRequests{All: views}
	for _, view := range views {
		if view.RequestType == "sent" {
			requests.Sent = append(requests.Sent, view)
		} else {
			requests.Received = append(requests.Received, view)
		}
	}
	return requests, nil
}

// UpdateStatus moves a friend request through its lifecycle on behalf of
// the acting user.
func (s *SyndicateService) UpdateStatus(ctx context.Context, actor auth.Identity, requestID uuid.UUID, rawStatus string) (*FriendRequestView, error) {
	next, err := friend.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	action := &actions.UpdateFriendRequestStatus{
		RequestID: requestID,
		ActorID:   actor.UserID,
		Next:      next,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, actor.UserID, []*friend.FriendRequest{action.Updated})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// buildViews resolves the other-user display fields for each request.
func (s *SyndicateService) buildViews(ctx context.Context, userID uuid.UUID, requests []*friend.FriendRequest) ([]FriendRequestView, error) {
	otherIDs := make([]uuid.UUID, 0, len(requests))
	for _, request := range requests {
		if request.RequesterID == userID {
			otherIDs = append(otherIDs, request.RequestedID)
		} else {
			otherIDs = append(otherIDs, request.RequesterID)
		}
	}

	userRows, err := s.users.ListByIDs(ctx, otherIDs)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[uuid.UUID]*SyndicateMember, len(userRows))
	for _, row := range userRows {
		usersByID[row.ID] = &SyndicateMember{UserID: row.ID, Username: row.Username}
	}

	views := make([]FriendRequestView, 0, len(requests))
	for _, request := range requests {
		view := FriendRequestView{
			RequestID: request.ID,
			Status:    request.Status,
			CreatedAt: request.CreatedAt,
		}
		otherID := request.RequesterID
		view.RequestType = "received"
		if request.RequesterID == userID {
			otherID = request.RequestedID
			view.RequestType = "sent"
		}
		if other, ok := usersByID[otherID]; ok {
			view.OtherUser = *other
		}
		views = append(views, view)
	}
	return views, nil
}
