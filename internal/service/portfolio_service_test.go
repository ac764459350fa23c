package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/syndicate-server/internal/storage/transaction"
	"github.com/carson-networks/syndicate-server/internal/storage/user"
)

func TestAggregate_EmptySet(t *testing.T) {
	summary := Aggregate(nil, uuid.Must(uuid.NewV4()))

	assert.Equal(t, 0, summary.ActiveTransactions)
	assert.True(t, summary.InvestedAmount.IsZero())
	assert.True(t, summary.InterestAmount.IsZero())
	assert.True(t, summary.ROIPercent.IsZero(), "no division by zero")
}

func TestAggregate_SyndicatedTransaction(t *testing.T) {
	aliceID := uuid.Must(uuid.NewV4())
	bobID := uuid.Must(uuid.NewV4())
	carolID := uuid.Must(uuid.NewV4())

	// 10000 at 12%: alice takes 4000, bob takes 6000, carol originated.
	txs := []Transaction{{
		ID:             uuid.Must(uuid.NewV4()),
		RiskTakerID:    carolID,
		TotalPrincipal: dec("10000"),
		InterestRate:   dec("12"),
		Entries: []SplitwiseEntry{
			{SyndicatorID: aliceID, Principal: dec("4000"), InterestRate: dec("12")},
			{SyndicatorID: bobID, Principal: dec("6000"), InterestRate: dec("12")},
		},
	}}

	alice := Aggregate(txs, aliceID)
	assert.True(t, alice.InvestedAmount.Equal(dec("4000")))
	assert.True(t, alice.InterestAmount.Equal(dec("480")), "interest computed per entry")
	assert.True(t, alice.ROIPercent.Equal(dec("12")))
	assert.Equal(t, 1, alice.ActiveTransactions)
	assert.True(t, alice.RiskTakenPrincipal.IsZero())

	bob := Aggregate(txs, bobID)
	assert.True(t, bob.InvestedAmount.Equal(dec("6000")))
	assert.True(t, bob.InterestAmount.Equal(dec("720")))

	carol := Aggregate(txs, carolID)
	assert.True(t, carol.InvestedAmount.IsZero(), "no matching entry contributes zero")
	assert.True(t, carol.RiskTakenPrincipal.Equal(dec("10000")))
	assert.True(t, carol.RiskTakenInterest.Equal(dec("1200")))
}

func TestAggregate_MatchesByUserID(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	// Same username on a different user ID must not match.
	txs := []Transaction{{
		RiskTakerID:    uuid.Must(uuid.NewV4()),
		TotalPrincipal: dec("1000"),
		InterestRate:   dec("10"),
		Entries: []SplitwiseEntry{
			{SyndicatorID: uuid.Must(uuid.NewV4()), SyndicatorUsername: "alice", Principal: dec("1000"), InterestRate: dec("10")},
		},
	}}

	summary := Aggregate(txs, userID)
	assert.True(t, summary.InvestedAmount.IsZero())
	assert.Equal(t, 1, summary.ActiveTransactions, "still counted as active")
}

func TestAggregate_MixedRates(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	txs := []Transaction{
		{
			RiskTakerID:    uuid.Must(uuid.NewV4()),
			TotalPrincipal: dec("2000"),
			InterestRate:   dec("10"),
			Entries: []SplitwiseEntry{
				{SyndicatorID: userID, Principal: dec("2000"), InterestRate: dec("10")},
			},
		},
		{
			RiskTakerID:    uuid.Must(uuid.NewV4()),
			TotalPrincipal: dec("1000"),
			InterestRate:   dec("20"),
			Entries: []SplitwiseEntry{
				{SyndicatorID: userID, Principal: dec("1000"), InterestRate: dec("20")},
			},
		},
	}

	summary := Aggregate(txs, userID)
	assert.True(t, summary.InvestedAmount.Equal(dec("3000")))
	assert.True(t, summary.InterestAmount.Equal(dec("400")), "200 + 200")
	// 400 / 3000 * 100 rounded to 2 places.
	assert.True(t, summary.ROIPercent.Equal(dec("13.33")))
}

func TestPortfolioSummary_FetchesAndAggregates(t *testing.T) {
	transactions := new(mockTransactionStore)
	users := new(mockUserStore)
	svc := NewPortfolioService(transactions, users)

	userID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	transactions.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.UserID == userID && f.Limit == 0
	})).Return([]*transaction.Transaction{{
		ID:             txID,
		RiskTakerID:    userID,
		TotalPrincipal: dec("5000"),
		InterestRate:   dec("10"),
		CreatedAt:      now,
	}}, nil)
	transactions.On("ListEntries", mock.Anything, []uuid.UUID{txID}).
		Return([]*transaction.SplitwiseEntry{{
			ID:            uuid.Must(uuid.NewV4()),
			TransactionID: txID,
			SyndicatorID:  userID,
			Principal:     dec("5000"),
			InterestRate:  dec("10"),
		}}, nil)
	users.On("ListByIDs", mock.Anything, mock.Anything).
		Return([]*user.User{{ID: userID, Username: "carol"}}, nil)

	summary, err := svc.Summary(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ActiveTransactions)
	assert.True(t, summary.InvestedAmount.Equal(dec("5000")))
	assert.True(t, summary.InterestAmount.Equal(dec("500")))
	assert.True(t, summary.ROIPercent.Equal(dec("10")))
	assert.True(t, summary.RiskTakenPrincipal.Equal(dec("5000")))
}
