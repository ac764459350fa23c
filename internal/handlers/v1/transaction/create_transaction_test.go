package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/syndicate-server/internal/allocation"
	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/service"
)

type mockTransactionCreator struct {
	mock.Mock
}

func (m *mockTransactionCreator) Create(ctx context.Context, riskTaker auth.Identity, input service.CreateTransaction) (*service.Transaction, error) {
	args := m.Called(ctx, riskTaker, input)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

var testIdentity = auth.Identity{
	UserID:   uuid.Must(uuid.NewV4()),
	Username: "carol",
}

// newCreateTestAPI registers the handler against a humatest API with a fixed
// authenticated identity.
func newCreateTestAPI(t *testing.T, svc transactionCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(auth.InjectIdentity(testIdentity))
	NewCreateTransactionHandler(svc).Register(api)
	return api
}

// -- parseCreateTransactionInput unit tests --

func TestParseCreateTransactionInput_ValidInput(t *testing.T) {
	startDate := "2026-01-15T10:30:00Z"

	input, err := parseCreateTransactionInput(&CreateTransactionBody{
		TotalPrincipalAmount: "10000",
		TotalInterestAmount:  "12",
		StartDate:            startDate,
		SyndicateDetails: map[string]SyndicateDetail{
			"alice": {PrincipalAmount: "4000"},
			"bob":   {PrincipalAmount: "6000"},
		},
	})
	assert.NoError(t, err)
	assert.True(t, input.TotalPrincipal.Equal(decimal.RequireFromString("10000")))
	assert.True(t, input.InterestRate.Equal(decimal.RequireFromString("12")))
	expectedDate, _ := time.Parse(time.RFC3339, startDate)
	assert.True(t, input.StartDate.Equal(expectedDate))
	assert.Len(t, input.SyndicateDetails, 2)
	assert.True(t, input.SyndicateDetails["alice"].Principal.Equal(decimal.RequireFromString("4000")))
}

func TestParseCreateTransactionInput_DefaultsStartDate(t *testing.T) {
	input, err := parseCreateTransactionInput(&CreateTransactionBody{
		TotalPrincipalAmount: "500",
		TotalInterestAmount:  "10",
	})
	assert.NoError(t, err)
	assert.False(t, input.StartDate.IsZero())
}

func TestParseCreateTransactionInput_InvalidPrincipal(t *testing.T) {
	_, err := parseCreateTransactionInput(&CreateTransactionBody{
		TotalPrincipalAmount: "not-a-decimal",
		TotalInterestAmount:  "10",
	})
	assert.Error(t, err)
}

func TestParseCreateTransactionInput_InvalidMemberPrincipal(t *testing.T) {
	_, err := parseCreateTransactionInput(&CreateTransactionBody{
		TotalPrincipalAmount: "500",
		TotalInterestAmount:  "10",
		SyndicateDetails: map[string]SyndicateDetail{
			"alice": {PrincipalAmount: "lots"},
		},
	})
	assert.Error(t, err)
}

// -- HTTP integration tests --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	txID := uuid.Must(uuid.NewV4())
	aliceID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionCreator)
	mockSvc.On("Create", mock.Anything, testIdentity, mock.MatchedBy(func(input service.CreateTransaction) bool {
		return input.TotalPrincipal.Equal(decimal.RequireFromString("10000")) &&
			input.InterestRate.Equal(decimal.RequireFromString("12")) &&
			input.SyndicateDetails["alice"].Principal.Equal(decimal.RequireFromString("10000"))
	})).Return(&service.Transaction{
		ID:                txID,
		RiskTakerID:       testIdentity.UserID,
		RiskTakerUsername: testIdentity.Username,
		TotalPrincipal:    decimal.RequireFromString("10000"),
		InterestRate:      decimal.RequireFromString("12"),
		StartDate:         now,
		CreatedAt:         now,
		Syndicators: []service.SyndicateMember{
			{UserID: aliceID, Username: "alice"},
		},
		Entries: []service.SplitwiseEntry{
			{
				ID:                 uuid.Must(uuid.NewV4()),
				SyndicatorID:       aliceID,
				SyndicatorUsername: "alice",
				SyndicatorEmail:    "alice@example.com",
				Principal:          decimal.RequireFromString("10000"),
				InterestRate:       decimal.RequireFromString("12"),
				CreatedAt:          now,
			},
		},
	}, nil)

	resp := newCreateTestAPI(t, mockSvc).Post("/create_transaction/", CreateTransactionBody{
		TotalPrincipalAmount: "10000",
		TotalInterestAmount:  "12",
		SyndicateDetails: map[string]SyndicateDetail{
			"alice": {PrincipalAmount: "10000"},
		},
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateTransactionResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Created)
	assert.Equal(t, txID.String(), body.Transaction.TransactionID)
	assert.Equal(t, "carol", body.Transaction.RiskTakerUsername)
	assert.Len(t, body.Transaction.SplitwiseEntries, 1)
	assert.Equal(t, "alice", body.Transaction.SplitwiseEntries[0].SyndicatorUsername)
	assert.Equal(t, "1200", body.Transaction.SplitwiseEntries[0].InterestAmount)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_ValidationFailure(t *testing.T) {
	mockSvc := new(mockTransactionCreator)
	mockSvc.On("Create", mock.Anything, testIdentity, mock.Anything).
		Return((*service.Transaction)(nil), &allocation.ValidationError{Fields: map[string]string{
			"syndicate_details": "member principal amounts must sum to the total principal",
		}})

	resp := newCreateTestAPI(t, mockSvc).Post("/create_transaction/", CreateTransactionBody{
		TotalPrincipalAmount: "10000",
		TotalInterestAmount:  "12",
		SyndicateDetails: map[string]SyndicateDetail{
			"alice": {PrincipalAmount: "4000"},
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "body.syndicate_details")
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_InvalidDecimal(t *testing.T) {
	mockSvc := new(mockTransactionCreator)

	resp := newCreateTestAPI(t, mockSvc).Post("/create_transaction/", CreateTransactionBody{
		TotalPrincipalAmount: "not-a-decimal",
		TotalInterestAmount:  "12",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestHTTP_CreateTransaction_MissingRequiredFields(t *testing.T) {
	mockSvc := new(mockTransactionCreator)

	// Huma schema validation rejects the request before the handler runs.
	resp := newCreateTestAPI(t, mockSvc).Post("/create_transaction/", map[string]any{})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestHTTP_CreateTransaction_NoIdentity(t *testing.T) {
	mockSvc := new(mockTransactionCreator)
	_, api := humatest.New(t)
	NewCreateTransactionHandler(mockSvc).Register(api)

	resp := api.Post("/create_transaction/", CreateTransactionBody{
		TotalPrincipalAmount: "10000",
		TotalInterestAmount:  "12",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestHTTP_CreateTransaction_ServiceError(t *testing.T) {
	mockSvc := new(mockTransactionCreator)
	mockSvc.On("Create", mock.Anything, testIdentity, mock.Anything).
		Return((*service.Transaction)(nil), errors.New("database unavailable"))

	resp := newCreateTestAPI(t, mockSvc).Post("/create_transaction/", CreateTransactionBody{
		TotalPrincipalAmount: "10000",
		TotalInterestAmount:  "12",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
