package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/syndicate-server/internal/storage/friend"
	"github.com/carson-networks/syndicate-server/internal/storage/transaction"
	"github.com/carson-networks/syndicate-server/internal/storage/user"
)

type Reader struct {
	Users        *user.Reader
	Transactions *transaction.Reader
	Friends      *friend.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Users:        user.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Friends:      friend.NewReader(exec),
	}
}
