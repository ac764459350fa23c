package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/syndicate-server/internal/storage"
	"github.com/carson-networks/syndicate-server/internal/storage/transaction"
)

// EntryAllocation is one resolved syndicate member's share.
type EntryAllocation struct {
	SyndicatorID uuid.UUID
	Principal    decimal.Decimal
	InterestRate decimal.Decimal
}

// CreateTransaction inserts a transaction and its splitwise entries
// atomically. The allocation has already been validated by the service.
type CreateTransaction struct {
	RiskTakerID    uuid.UUID
	TotalPrincipal decimal.Decimal
	InterestRate   decimal.Decimal
	StartDate      time.Time
	Entries        []EntryAllocation

	// CreatedID is set on success.
	CreatedID uuid.UUID
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	transactionID, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		RiskTakerID:    a.RiskTakerID,
		TotalPrincipal: a.TotalPrincipal,
		InterestRate:   a.InterestRate,
		StartDate:      a.StartDate,
	})
	if err != nil {
		return err
	}

	entryCreates := make([]*transaction.EntryCreate, len(a.Entries))
	for i, entry := range a.Entries {
		entryCreates[i] = &transaction.EntryCreate{
			TransactionID: transactionID,
			SyndicatorID:  entry.SyndicatorID,
			Principal:     entry.Principal,
			InterestRate:  entry.InterestRate,
		}
	}
	if err := writer.Transaction.InsertEntries(ctx, entryCreates); err != nil {
		return err
	}

	a.CreatedID = transactionID
	return nil
}
