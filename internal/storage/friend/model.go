package friend

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Status is the lifecycle state of a friend request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusCanceled Status = "canceled"
)

var (
	ErrNotAllowed     = errors.New("user may not perform this transition")
	ErrTerminalStatus = errors.New("friend request is already in a terminal state")
	ErrInvalidStatus  = errors.New("invalid friend request status")
)

// ParseStatus converts a wire status string to a Status.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusAccepted, StatusRejected, StatusCanceled:
		return Status(raw), nil
	}
	return "", ErrInvalidStatus
}

// FriendRequest represents a friend request record.
type FriendRequest struct {
	ID          uuid.UUID `db:"id"`
	RequesterID uuid.UUID `db:"requester_id"`
	RequestedID uuid.UUID `db:"requested_id"`
	Status      Status    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// FriendRequestCreate is the input for creating a new friend request.
type FriendRequestCreate struct {
	RequesterID uuid.UUID
	RequestedID uuid.UUID
}

// CanTransition reports whether the given actor may move the request to
// next. Only the addressee may accept or reject, only the sender may
// cancel, and terminal states accept no further transitions.
func (r *FriendRequest) CanTransition(actorID uuid.UUID, next Status) error {
	if r.Status != StatusPending {
		return ErrTerminalStatus
	}

	switch next {
	case StatusAccepted, StatusRejected:
		if actorID != r.RequestedID {
			return ErrNotAllowed
		}
	case StatusCanceled:
		if actorID != r.RequesterID {
			return ErrNotAllowed
		}
	default:
		return ErrInvalidStatus
	}

	return nil
}
