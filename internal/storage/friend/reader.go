package friend

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{"id", "requester_id", "requested_id", "status", "created_at", "updated_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a friend request by primary key. Returns nil when not found.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*FriendRequest, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("friend_requests"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*FriendRequest]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ListPendingForUser returns pending requests the user sent or received,
// newest first.
func (r *Reader) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]*FriendRequest, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("friend_requests"),
		sm.Where(psql.Raw("(requester_id = ? OR requested_id = ?)", userID, userID)),
		sm.Where(psql.Quote("status").EQ(psql.Arg(StatusPending))),
		sm.OrderBy("created_at").Desc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*FriendRequest]())
}

// HasActivePair reports whether a pending or accepted request already links
// the two users in either direction.
func (r *Reader) HasActivePair(ctx context.Context, a, b uuid.UUID) (bool, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COUNT(*)")),
		sm.From("friend_requests"),
		sm.Where(psql.Raw(
			"((requester_id = ? AND requested_id = ?) OR (requester_id = ? AND requested_id = ?))",
			a, b, b, a,
		)),
		sm.Where(psql.Quote("status").In(psql.Arg(StatusPending, StatusAccepted))),
	)
	count, err := bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAccepted returns the accepted requests involving the user, oldest
// first, which together form the user's syndicate roster.
func (r *Reader) ListAccepted(ctx context.Context, userID uuid.UUID) ([]*FriendRequest, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("friend_requests"),
		sm.Where(psql.Raw("(requester_id = ? OR requested_id = ?)", userID, userID)),
		sm.Where(psql.Quote("status").EQ(psql.Arg(StatusAccepted))),
		sm.OrderBy("updated_at").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*FriendRequest]())
}
