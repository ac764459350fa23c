package user

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

var columns = []any{"id", "username", "email", "phone_number", "password_hash", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a user by primary key. Returns nil when not found.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("users"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return r.one(ctx, q)
}

// FindByUsername retrieves a user by username. Returns nil when not found.
func (r *Reader) FindByUsername(ctx context.Context, username string) (*User, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("users"),
		sm.Where(psql.Quote("username").EQ(psql.Arg(username))),
	)
	return r.one(ctx, q)
}

// ListByIDs returns the users for the given IDs, unordered.
func (r *Reader) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("users"),
		sm.Where(psql.Quote("id").In(psql.Arg(args...))),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*User]())
}

// ListByUsernames returns the users for the given usernames, unordered.
// Unknown usernames are simply absent from the result.
func (r *Reader) ListByUsernames(ctx context.Context, usernames []string) ([]*User, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	args := make([]any, len(usernames))
	for i, username := range usernames {
		args[i] = username
	}
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("users"),
		sm.Where(psql.Quote("username").In(psql.Arg(args...))),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*User]())
}

func (r *Reader) one(ctx context.Context, q bob.Query) (*User, error) {
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*User]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
