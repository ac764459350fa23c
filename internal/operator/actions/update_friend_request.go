package actions

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/syndicate-server/internal/storage"
	"github.com/carson-networks/syndicate-server/internal/storage/friend"
)

var ErrRequestNotFound = errors.New("friend request not found")

// UpdateFriendRequestStatus moves a friend request through its lifecycle.
// The request row is locked so the transition check and update are atomic.
type UpdateFriendRequestStatus struct {
	RequestID uuid.UUID
	ActorID   uuid.UUID
	Next      friend.Status

	// Updated is set on success.
	Updated *friend.FriendRequest
}

func (a *UpdateFriendRequestStatus) Perform(ctx context.Context, writer *storage.Writer) error {
	request, err := writer.Friend.FindByIDForUpdate(ctx, a.RequestID)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrRequestNotFound
	}

	if err := request.CanTransition(a.ActorID, a.Next); err != nil {
		return err
	}

	if err := writer.Friend.UpdateStatus(ctx, a.RequestID, a.Next); err != nil {
		return err
	}

	request.Status = a.Next
	request.UpdatedAt = time.Now()
	a.Updated = request
	return nil
}
