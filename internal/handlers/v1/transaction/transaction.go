package transaction

import (
	"time"

	"github.com/carson-networks/syndicate-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	TransactionID        string            `json:"transaction_id" doc:"Transaction UUID"`
	RiskTakerID          string            `json:"risk_taker_id" doc:"Originating user UUID"`
	RiskTakerUsername    string            `json:"risk_taker_username" doc:"Originating user's username"`
	TotalPrincipalAmount string            `json:"total_principal_amount" doc:"Decimal principal amount"`
	TotalInterest        string            `json:"total_interest" doc:"Shared interest rate in percent"`
	StartDate            string            `json:"start_date" doc:"RFC3339 start date"`
	CreatedAt            string            `json:"created_at" doc:"RFC3339 creation time"`
	Syndicators          []SyndicateMember `json:"syndicators" doc:"Participating syndicate members"`
	SplitwiseEntries     []SplitwiseEntry  `json:"splitwise_entries" doc:"Per-member principal shares"`
}

// SyndicateMember is a user reference on a transaction.
type SyndicateMember struct {
	UserID   string `json:"user_id" doc:"User UUID"`
	Username string `json:"username" doc:"Username"`
}

// SplitwiseEntry is one member's share of a transaction.
type SplitwiseEntry struct {
	SplitwiseID        string `json:"splitwise_id" doc:"Entry UUID"`
	SyndicatorID       string `json:"syndicator_id" doc:"Member user UUID"`
	SyndicatorUsername string `json:"syndicator_username" doc:"Member username"`
	SyndicatorEmail    string `json:"syndicator_email" doc:"Member email"`
	PrincipalAmount    string `json:"principal_amount" doc:"Decimal principal share"`
	OriginalInterest   string `json:"original_interest" doc:"Agreed interest rate in percent"`
	InterestAmount     string `json:"interest_amount" doc:"Interest money on this share"`
	CreatedAt          string `json:"created_at" doc:"RFC3339 creation time"`
}

func toAPITransaction(tx *service.Transaction) Transaction {
	converted := Transaction{
		TransactionID:        tx.ID.String(),
		RiskTakerID:          tx.RiskTakerID.String(),
		RiskTakerUsername:    tx.RiskTakerUsername,
		TotalPrincipalAmount: tx.TotalPrincipal.String(),
		TotalInterest:        tx.InterestRate.String(),
		StartDate:            tx.StartDate.Format(time.RFC3339),
		CreatedAt:            tx.CreatedAt.Format(time.RFC3339),
		Syndicators:          make([]SyndicateMember, len(tx.Syndicators)),
		SplitwiseEntries:     make([]SplitwiseEntry, len(tx.Entries)),
	}
	for i, member := range tx.Syndicators {
		converted.Syndicators[i] = SyndicateMember{
			UserID:   member.UserID.String(),
			Username: member.Username,
		}
	}
	for i, entry := range tx.Entries {
		converted.SplitwiseEntries[i] = SplitwiseEntry{
			SplitwiseID:        entry.ID.String(),
			SyndicatorID:       entry.SyndicatorID.String(),
			SyndicatorUsername: entry.SyndicatorUsername,
			SyndicatorEmail:    entry.SyndicatorEmail,
			PrincipalAmount:    entry.Principal.String(),
			OriginalInterest:   entry.InterestRate.String(),
			InterestAmount:     entry.InterestAmount().String(),
			CreatedAt:          entry.CreatedAt.Format(time.RFC3339),
		}
	}
	return converted
}
