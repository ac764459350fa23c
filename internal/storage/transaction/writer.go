package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
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

// Insert creates a new transaction and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	if create.StartDate.IsZero() {
		q := psql.Insert(
			im.Into("transactions", "risk_taker_id", "total_principal_amount", "total_interest_rate"),
			im.Values(psql.Arg(create.RiskTakerID, create.TotalPrincipal, create.InterestRate)),
			im.Returning("id"),
		)
		return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	}

	q := psql.Insert(
		im.Into("transactions", "risk_taker_id", "total_principal_amount", "total_interest_rate", "start_date"),
		im.Values(psql.Arg(create.RiskTakerID, create.TotalPrincipal, create.InterestRate, create.StartDate)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

// InsertEntries creates the splitwise entries of a transaction.
func (w *Writer) InsertEntries(ctx context.Context, creates []*EntryCreate) error {
	if len(creates) == 0 {
		return nil
	}

	queryMods := []bob.Mod[*dialect.InsertQuery]{
		im.Into("splitwise_entries", "transaction_id", "syndicator_id", "principal_amount", "interest_rate"),
	}
	for _, create := range creates {
		queryMods = append(queryMods,
			im.Values(psql.Arg(create.TransactionID, create.SyndicatorID, create.Principal, create.InterestRate)))
	}

	_, err := bob.Exec(ctx, w.tx, psql.Insert(queryMods...))
	return err
}
