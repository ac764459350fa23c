package transaction

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/syndicate-server/internal/allocation"
	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/logging"
	"github.com/carson-networks/syndicate-server/internal/service"
)

// SyndicateDetail is one member's requested share in a create request.
type SyndicateDetail struct {
	PrincipalAmount string `json:"principal_amount" required:"true" doc:"Decimal principal share"`
	Interest        string `json:"interest,omitempty" doc:"Ignored; the transaction's shared rate applies to every member"`
}

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	TotalPrincipalAmount string                     `json:"total_principal_amount" required:"true" doc:"Decimal total principal"`
	TotalInterestAmount  string                     `json:"total_interest_amount" required:"true" doc:"Shared interest rate in percent"`
	StartDate            string                     `json:"start_date,omitempty" doc:"RFC3339 start date, defaults to now"`
	SyndicateDetails     map[string]SyndicateDetail `json:"syndicate_details" doc:"Requested allocation keyed by member username"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponseBody is the response body for creating a transaction.
type CreateTransactionResponseBody struct {
	Created     bool        `json:"created" doc:"Always true on success"`
	Transaction Transaction `json:"transaction" doc:"The committed transaction"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body CreateTransactionResponseBody
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	Create(ctx context.Context, riskTaker auth.Identity, input service.CreateTransaction) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /create_transaction/.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/create_transaction/",
		Summary:       "Create transaction",
		Description:   "Validates the requested allocation and creates the transaction with its splitwise entries atomically.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, h.handle)
}

// parseCreateTransactionInput parses the decimal and date fields of the API
// input into the service input.
func parseCreateTransactionInput(body *CreateTransactionBody) (service.CreateTransaction, error) {
	input := service.CreateTransaction{
		SyndicateDetails: make(map[string]service.MemberAllocation, len(body.SyndicateDetails)),
	}

	totalPrincipal, err := decimal.NewFromString(body.TotalPrincipalAmount)
	if err != nil {
		return input, huma.NewError(http.StatusBadRequest, "invalid total_principal_amount", err)
	}
	input.TotalPrincipal = totalPrincipal

	interestRate, err := decimal.NewFromString(body.TotalInterestAmount)
	if err != nil {
		return input, huma.NewError(http.StatusBadRequest, "invalid total_interest_amount", err)
	}
	input.InterestRate = interestRate

	if body.StartDate != "" {
		startDate, err := time.Parse(time.RFC3339, body.StartDate)
		if err != nil {
			return input, huma.NewError(http.StatusBadRequest, "invalid start_date", err)
		}
		input.StartDate = startDate
	} else {
		input.StartDate = time.Now()
	}

	for username, detail := range body.SyndicateDetails {
		principal, err := decimal.NewFromString(detail.PrincipalAmount)
		if err != nil {
			return input, huma.NewError(http.StatusBadRequest, "invalid principal_amount for "+username, err)
		}
		input.SyndicateDetails[username] = service.MemberAllocation{Principal: principal}
	}

	return input, nil
}

// validationProblem maps a field-level validation failure onto a 422 with
// one error detail per failing field.
func validationProblem(validationErr *allocation.ValidationError) error {
	fields := make([]string, 0, len(validationErr.Fields))
	for field := range validationErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]error, 0, len(fields))
	for _, field := range fields {
		details = append(details, &huma.ErrorDetail{
			Message:  validationErr.Fields[field],
			Location: "body." + field,
		})
	}
	return huma.Error422UnprocessableEntity("allocation validation failed", details...)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "not authenticated")
	}

	serviceInput, err := parseCreateTransactionInput(&input.Body)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	created, err := h.TransactionService.Create(ctx, identity, serviceInput)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		var validationErr *allocation.ValidationError
		if errors.As(err, &validationErr) {
			return nil, validationProblem(validationErr)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", created.ID.String())
	}

	return &CreateTransactionOutput{Body: CreateTransactionResponseBody{
		Created:     true,
		Transaction: toAPITransaction(created),
	}}, nil
}
