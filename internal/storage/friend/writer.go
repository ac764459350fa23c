package friend

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new pending friend request and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *FriendRequestCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("friend_requests", "requester_id", "requested_id", "status"),
		im.Values(psql.Arg(create.RequesterID, create.RequestedID, StatusPending)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

// FindByIDForUpdate retrieves a friend request with a row lock so the
// status transition check and update happen atomically.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*FriendRequest, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("friend_requests"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[*FriendRequest]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateStatus moves a friend request to the given status.
func (w *Writer) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	q := psql.Update(
		um.Table("friend_requests"),
		um.SetCol("status").ToArg(status),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
