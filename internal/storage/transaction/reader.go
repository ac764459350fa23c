package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var transactionColumns = []any{
	"id", "risk_taker_id", "total_principal_amount",
	"total_interest_rate", "start_date", "created_at",
}

var entryColumns = []any{
	"id", "transaction_id", "syndicator_id",
	"principal_amount", "interest_rate", "created_at",
}

// participantWhere scopes transactions to a user as risk taker or syndicator.
const participantWhere = `(risk_taker_id = ? OR EXISTS (
	SELECT 1 FROM splitwise_entries se
	WHERE se.transaction_id = transactions.id AND se.syndicator_id = ?))`

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a transaction by primary key. Returns nil when not found.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// List returns transactions matching the filter, newest first. A positive
// limit fetches limit+1 rows so callers can probe for a next page.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
		sm.Where(psql.Raw(participantWhere, filter.UserID, filter.UserID)),
	}
	if filter.MaxCreationTime != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}
	queryMods = append(queryMods,
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// Count returns the number of transactions the user participates in.
func (r *Reader) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COUNT(*)")),
		sm.From("transactions"),
		sm.Where(psql.Raw(participantWhere, userID, userID)),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}

// ListEntries returns the splitwise entries of the given transactions,
// ordered by creation time within each transaction.
func (r *Reader) ListEntries(ctx context.Context, transactionIDs []uuid.UUID) ([]*SplitwiseEntry, error) {
	if len(transactionIDs) == 0 {
		return nil, nil
	}
	args := make([]any, len(transactionIDs))
	for i, id := range transactionIDs {
		args[i] = id
	}
	q := psql.Select(
		sm.Columns(entryColumns...),
		sm.From("splitwise_entries"),
		sm.Where(psql.Quote("transaction_id").In(psql.Arg(args...))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*SplitwiseEntry]())
}
