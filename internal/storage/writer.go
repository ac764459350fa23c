package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/syndicate-server/internal/storage/friend"
	"github.com/carson-networks/syndicate-server/internal/storage/transaction"
	"github.com/carson-networks/syndicate-server/internal/storage/user"
)

type Writer struct {
	tx          bob.Tx
	User        *user.Writer
	Transaction *transaction.Writer
	Friend      *friend.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:          tx,
		User:        user.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
		Friend:      friend.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
