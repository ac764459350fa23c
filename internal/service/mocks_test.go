package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/syndicate-server/internal/operator/actions"
	"github.com/carson-networks/syndicate-server/internal/storage/friend"
	"github.com/carson-networks/syndicate-server/internal/storage/transaction"
	"github.com/carson-networks/syndicate-server/internal/storage/user"
)

type mockTransactionStore struct {
	mock.Mock
}

func (m *mockTransactionStore) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionStore) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionStore) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactionStore) ListEntries(ctx context.Context, transactionIDs []uuid.UUID) ([]*transaction.SplitwiseEntry, error) {
	args := m.Called(ctx, transactionIDs)
	rows, _ := args.Get(0).([]*transaction.SplitwiseEntry)
	return rows, args.Error(1)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

func (m *mockUserStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*user.User, error) {
	args := m.Called(ctx, ids)
	rows, _ := args.Get(0).([]*user.User)
	return rows, args.Error(1)
}

func (m *mockUserStore) ListByUsernames(ctx context.Context, usernames []string) ([]*user.User, error) {
	args := m.Called(ctx, usernames)
	rows, _ := args.Get(0).([]*user.User)
	return rows, args.Error(1)
}

type mockFriendStore struct {
	mock.Mock
}

func (m *mockFriendStore) FindByID(ctx context.Context, id uuid.UUID) (*friend.FriendRequest, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*friend.FriendRequest)
	return row, args.Error(1)
}

func (m *mockFriendStore) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]*friend.FriendRequest, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]*friend.FriendRequest)
	return rows, args.Error(1)
}

func (m *mockFriendStore) ListAccepted(ctx context.Context, userID uuid.UUID) ([]*friend.FriendRequest, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]*friend.FriendRequest)
	return rows, args.Error(1)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}
