package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/syndicate-server/internal/storage"
	"github.com/carson-networks/syndicate-server/internal/storage/friend"
)

// CreateFriendRequest creates a pending friend request unless an active
// (pending or accepted) pair already links the two users. A duplicate is
// not an error; Created just stays false.
type CreateFriendRequest struct {
	RequesterID uuid.UUID
	RequestedID uuid.UUID

	// Created and CreatedID are set on success.
	Created   bool
	CreatedID uuid.UUID
}

func (a *CreateFriendRequest) Perform(ctx context.Context, writer *storage.Writer) error {
	exists, err := writer.Friend.HasActivePair(ctx, a.RequesterID, a.RequestedID)
	if err != nil {
		return err
	}
	if exists {
		a.Created = false
		return nil
	}

	requestID, err := writer.Friend.Insert(ctx, &friend.FriendRequestCreate{
		RequesterID: a.RequesterID,
		RequestedID: a.RequestedID,
	})
	if err != nil {
		return err
	}

	a.Created = true
	a.CreatedID = requestID
	return nil
}
