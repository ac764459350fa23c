package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/syndicate-server/internal/allocation"
	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/operator/actions"
	"github.com/carson-networks/syndicate-server/internal/storage/transaction"
	"github.com/carson-networks/syndicate-server/internal/storage/user"
)

const defaultLimit = 20

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionService handles transaction business logic.
type TransactionService struct {
	transactions transactionStore
	users        userStore
	processor    actionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactions transactionStore, users userStore, processor actionProcessor) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		users:        users,
		processor:    processor,
	}
}

// Create validates the requested allocation, resolves the syndicate members,
// and writes the transaction with its splitwise entries atomically. The
// returned transaction reflects the committed state. A failed validation
// performs no writes and returns an *allocation.ValidationError.
func (s *TransactionService) Create(ctx context.Context, riskTaker auth.Identity, input CreateTransaction) (*Transaction, error) {
	draft := allocation.NewDraft(input.TotalPrincipal, input.InterestRate)

	usernames := make([]string, 0, len(input.SyndicateDetails))
	for username := range input.SyndicateDetails {
		usernames = append(usernames, username)
	}
	draft.SelectFriends(usernames)

	// One shared rate per transaction; any per-member rates from the client
	// are overwritten.
	draft.SetInterestRate(input.InterestRate)
	for username, member := range input.SyndicateDetails {
		draft.SetMemberPrincipal(username, member.Principal)
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	members, err := s.resolveMembers(ctx, draft.Usernames())
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{
		RiskTakerID:    riskTaker.UserID,
		TotalPrincipal: draft.TotalPrincipal,
		InterestRate:   draft.InterestRate,
		StartDate:      input.StartDate,
		Entries:        make([]actions.EntryAllocation, 0, len(members)),
	}
	for _, username := range draft.Usernames() {
		member := draft.Member(username)
		action.Entries = append(action.Entries, actions.EntryAllocation{
			SyndicatorID: members[username].ID,
			Principal:    member.Principal,
			InterestRate: member.InterestRate,
		})
	}

	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	return s.Get(ctx, action.CreatedID)
}

// resolveMembers maps the selected usernames to user records. Unknown
// usernames become field-level validation errors.
func (s *TransactionService) resolveMembers(ctx context.Context, usernames []string) (map[string]*user.User, error) {
	rows, err := s.users.ListByUsernames(ctx, usernames)
	if err != nil {
		return nil, err
	}

	members := make(map[string]*user.User, len(rows))
	for _, row := range rows {
		members[row.Username] = row
	}

	fields := map[string]string{}
	for _, username := range usernames {
		if _, ok := members[username]; !ok {
			fields["syndicate_details."+username] = "unknown user"
		}
	}
	if len(fields) > 0 {
		return nil, &allocation.ValidationError{Fields: fields}
	}

	return members, nil
}

// Get retrieves a single transaction with its entries and display fields.
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrTransactionNotFound
	}

	assembled, err := s.assemble(ctx, []*transaction.Transaction{row})
	if err != nil {
		return nil, err
	}
	return &assembled[0], nil
}

// List returns a page of the user's transactions (as risk taker or
// syndicate member) plus the user's total transaction count.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, int64, error) {
	limit := defaultLimit
	offset := 0

	filter := &transaction.TransactionFilter{
		UserID: userID,
		Limit:  limit,
	}
	if cursor != nil {
		filter.Limit = cursor.Limit
		filter.Offset = cursor.Position
		filter.MaxCreationTime = &cursor.MaxCreationTime
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, 0, err
	}

	count, err := s.transactions.Count(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}

	if len(rows) == 0 {
		return nil, nil, count, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if cursor != nil {
			cursorMaxCreationTime = cursor.MaxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	assembled, err := s.assemble(ctx, rows)
	if err != nil {
		return nil, nil, 0, err
	}

	return assembled, nextCursor, count, nil
}

// ListAll returns every transaction the user participates in, unpaginated.
// Used by the portfolio aggregation.
func (s *TransactionService) ListAll(ctx context.Context, userID uuid.UUID) ([]Transaction, error) {
	rows, err := s.transactions.List(ctx, &transaction.TransactionFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, rows)
}

// assemble joins entries and user display fields onto storage rows.
func (s *TransactionService) assemble(ctx context.Context, rows []*transaction.Transaction) ([]Transaction, error) {
	return assembleTransactions(ctx, s.transactions, s.users, rows)
}

func assembleTransactions(ctx context.Context, transactions transactionStore, users userStore, rows []*transaction.Transaction) ([]Transaction, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	transactionIDs := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		transactionIDs[i] = row.ID
	}

	entries, err := transactions.ListEntries(ctx, transactionIDs)
	if err != nil {
		return nil, err
	}

	userIDs := map[uuid.UUID]struct{}{}
	for _, row := range rows {
		userIDs[row.RiskTakerID] = struct{}{}
	}
	for _, entry := range entries {
		userIDs[entry.SyndicatorID] = struct{}{}
	}
	ids := make([]uuid.UUID, 0, len(userIDs))
	for id := range userIDs {
		ids = append(ids, id)
	}

	userRows, err := users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[uuid.UUID]*user.User, len(userRows))
	for _, row := range userRows {
		usersByID[row.ID] = row
	}

	entriesByTransaction := map[uuid.UUID][]*transaction.SplitwiseEntry{}
	for _, entry := range entries {
		entriesByTransaction[entry.TransactionID] = append(entriesByTransaction[entry.TransactionID], entry)
	}

	result := make([]Transaction, len(rows))
	for i, row := range rows {
		converted := Transaction{
			ID:             row.ID,
			RiskTakerID:    row.RiskTakerID,
			TotalPrincipal: row.TotalPrincipal,
			InterestRate:   row.InterestRate,
			StartDate:      row.StartDate,
			CreatedAt:      row.CreatedAt,
		}
		if riskTaker, ok := usersByID[row.RiskTakerID]; ok {
			converted.RiskTakerUsername = riskTaker.Username
		}

		for _, entry := range entriesByTransaction[row.ID] {
			view := SplitwiseEntry{
				ID:           entry.ID,
				SyndicatorID: entry.SyndicatorID,
				Principal:    entry.Principal,
				InterestRate: entry.InterestRate,
				CreatedAt:    entry.CreatedAt,
			}
			if syndicator, ok := usersByID[entry.SyndicatorID]; ok {
				view.SyndicatorUsername = syndicator.Username
				view.SyndicatorEmail = syndicator.Email
			}
			converted.Entries = append(converted.Entries, view)
			converted.Syndicators = append(converted.Syndicators, SyndicateMember{
				UserID:   entry.SyndicatorID,
				Username: view.SyndicatorUsername,
			})
		}

		result[i] = converted
	}

	return result, nil
}
