package user

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

// Insert creates a new user and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("users", "username", "email", "phone_number", "password_hash"),
		im.Values(psql.Arg(create.Username, create.Email, create.PhoneNumber, create.PasswordHash)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}
