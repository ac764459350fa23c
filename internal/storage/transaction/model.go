package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a transaction record. Transactions are immutable
// once created; there are no update or delete paths.
type Transaction struct {
	ID             uuid.UUID       `db:"id"`
	RiskTakerID    uuid.UUID       `db:"risk_taker_id"`
	TotalPrincipal decimal.Decimal `db:"total_principal_amount"`
	InterestRate   decimal.Decimal `db:"total_interest_rate"`
	StartDate      time.Time       `db:"start_date"`
	CreatedAt      time.Time       `db:"created_at"`
}

// SplitwiseEntry records one syndicate member's principal share and agreed
// interest rate within a transaction.
type SplitwiseEntry struct {
	ID            uuid.UUID       `db:"id"`
	TransactionID uuid.UUID       `db:"transaction_id"`
	SyndicatorID  uuid.UUID       `db:"syndicator_id"`
	Principal     decimal.Decimal `db:"principal_amount"`
	InterestRate  decimal.Decimal `db:"interest_rate"`
	CreatedAt     time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	RiskTakerID    uuid.UUID
	TotalPrincipal decimal.Decimal
	InterestRate   decimal.Decimal
	StartDate      time.Time // defaults to now if zero
}

// EntryCreate is the input for one splitwise entry of a new transaction.
type EntryCreate struct {
	TransactionID uuid.UUID
	SyndicatorID  uuid.UUID
	Principal     decimal.Decimal
	InterestRate  decimal.Decimal
}

// TransactionFilter specifies filters for listing transactions. UserID
// scopes the list to transactions the user originated or participates in.
type TransactionFilter struct {
	UserID          uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}
