package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/syndicate-server/internal/storage/transaction"
	"github.com/carson-networks/syndicate-server/internal/storage/user"
)

// transactionStore is the slice of the storage reader the transaction and
// portfolio services depend on.
type transactionStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
	ListEntries(ctx context.Context, transactionIDs []uuid.UUID) ([]*transaction.SplitwiseEntry, error)
}

// userStore resolves user records for display fields.
type userStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*user.User, error)
	ListByUsernames(ctx context.Context, usernames []string) ([]*user.User, error)
}

// SyndicateMember is a user reference on a transaction.
type SyndicateMember struct {
	UserID   uuid.UUID
	Username string
}

// SplitwiseEntry is one member's share of a transaction, with display fields
// resolved.
type SplitwiseEntry struct {
	ID                 uuid.UUID
	SyndicatorID       uuid.UUID
	SyndicatorUsername string
	SyndicatorEmail    string
	Principal          decimal.Decimal
	InterestRate       decimal.Decimal
	CreatedAt          time.Time
}

// InterestAmount is this entry's interest money, computed on the entry's own
// principal and rate rather than the transaction total.
func (e *SplitwiseEntry) InterestAmount() decimal.Decimal {
	return e.Principal.Mul(e.InterestRate).Div(decimal.NewFromInt(100))
}

// Transaction represents a transaction in the service layer, with usernames
// and syndicators resolved.
type Transaction struct {
	ID                uuid.UUID
	RiskTakerID       uuid.UUID
	RiskTakerUsername string
	TotalPrincipal    decimal.Decimal
	InterestRate      decimal.Decimal
	StartDate         time.Time
	CreatedAt         time.Time
	Syndicators       []SyndicateMember
	Entries           []SplitwiseEntry
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// MemberAllocation is one syndicate member's requested share in a create
// request.
type MemberAllocation struct {
	Principal decimal.Decimal
}

// CreateTransaction is the input for creating a transaction.
type CreateTransaction struct {
	TotalPrincipal   decimal.Decimal
	InterestRate     decimal.Decimal
	StartDate        time.Time
	SyndicateDetails map[string]MemberAllocation
}
