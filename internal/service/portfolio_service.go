package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/syndicate-server/internal/storage/transaction"
)

var hundred = decimal.NewFromInt(100)

// PortfolioSummary is the aggregated view of a user's position across all
// their transactions.
type PortfolioSummary struct {
	// InvestedAmount is the sum of the user's own splitwise principal shares.
	InvestedAmount decimal.Decimal
	// InterestAmount is the interest earned on those shares, computed
	// per entry on that entry's principal and rate.
	InterestAmount decimal.Decimal
	// ROIPercent is InterestAmount / InvestedAmount * 100, zero when
	// nothing is invested.
	ROIPercent decimal.Decimal
	// ActiveTransactions counts every transaction the user participates in;
	// there is no closed state.
	ActiveTransactions int
	// RiskTakenPrincipal is the total principal of transactions the user
	// originated.
	RiskTakenPrincipal decimal.Decimal
	// RiskTakenInterest is the interest owed on that originated principal.
	RiskTakenInterest decimal.Decimal
}

// Aggregate computes the portfolio summary for userID over the given
// transactions. Entries are matched by syndicator user ID; transactions
// without a matching entry contribute zero and are not an error.
func Aggregate(transactions []Transaction, userID uuid.UUID) PortfolioSummary {
	summary := PortfolioSummary{
		InvestedAmount:     decimal.Zero,
		InterestAmount:     decimal.Zero,
		ROIPercent:         decimal.Zero,
		ActiveTransactions: len(transactions),
		RiskTakenPrincipal: decimal.Zero,
		RiskTakenInterest:  decimal.Zero,
	}

	for _, tx := range transactions {
		for _, entry := range tx.Entries {
			if entry.SyndicatorID != userID {
				continue
			}
			summary.InvestedAmount = summary.InvestedAmount.Add(entry.Principal)
			summary.InterestAmount = summary.InterestAmount.Add(entry.InterestAmount())
		}

		if tx.RiskTakerID == userID {
			summary.RiskTakenPrincipal = summary.RiskTakenPrincipal.Add(tx.TotalPrincipal)
			summary.RiskTakenInterest = summary.RiskTakenInterest.Add(
				tx.TotalPrincipal.Mul(tx.InterestRate).Div(hundred))
		}
	}

	if summary.InvestedAmount.IsPositive() {
		summary.ROIPercent = summary.InterestAmount.Mul(hundred).DivRound(summary.InvestedAmount, 2)
	}

	return summary
}

// PortfolioService derives portfolio statistics from the transaction store.
type PortfolioService struct {
	transactions transactionStore
	users        userStore
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(transactions transactionStore, users userStore) *PortfolioService {
	return &PortfolioService{transactions: transactions, users: users}
}

// Summary aggregates the user's full transaction set.
func (s *PortfolioService) Summary(ctx context.Context, userID uuid.UUID) (PortfolioSummary, error) {
	rows, err := s.transactions.List(ctx, &transaction.TransactionFilter{UserID: userID})
	if err != nil {
		return PortfolioSummary{}, err
	}

	assembled, err := assembleTransactions(ctx, s.transactions, s.users, rows)
	if err != nil {
		return PortfolioSummary{}, err
	}

	return Aggregate(assembled, userID), nil
}
