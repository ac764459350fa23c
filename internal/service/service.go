package service

import (
	"context"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/operator"
	"github.com/carson-networks/syndicate-server/internal/operator/actions"
	"github.com/carson-networks/syndicate-server/internal/storage"
)

// actionProcessor enqueues mutations on the operator pipeline.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	User        *UserService
	Transaction *TransactionService
	Portfolio   *PortfolioService
	Syndicate   *SyndicateService
}

// NewService creates a new Service over the given storage, mutation
// pipeline, and token issuer.
func NewService(store *storage.Storage, op *operator.OperatorDelegator, issuer *auth.Issuer) *Service {
	transactionSvc := NewTransactionService(store.Read.Transactions, store.Read.Users, op)
	return &Service{
		User:        NewUserService(store.Read.Users, op, issuer),
		Transaction: transactionSvc,
		Portfolio:   NewPortfolioService(store.Read.Transactions, store.Read.Users),
		Syndicate:   NewSyndicateService(store.Read.Friends, store.Read.Users, op),
	}
}
