package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/logging"
	"github.com/carson-networks/syndicate-server/internal/service"
)

// ListTransactionsCursor represents a pagination cursor in the response body.
// It bundles position, limit, and max_creation_time so subsequent pages use
// consistent parameters.
type ListTransactionsCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"max_creation_time" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
}

// ListTransactionsInput is the Huma input for listing transactions. The
// cursor fields echo a previous response's next_cursor.
type ListTransactionsInput struct {
	Position        int    `query:"position" minimum:"0" doc:"Cursor position from a previous response"`
	Limit           int    `query:"limit" minimum:"0" maximum:"100" doc:"Cursor page size from a previous response"`
	MaxCreationTime string `query:"max_creation_time" doc:"Cursor max_creation_time from a previous response"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions     []Transaction           `json:"transactions" doc:"Page of transactions the user participates in"`
	TransactionCount int64                   `json:"transaction_count" doc:"Total number of the user's transactions"`
	NextCursor       *ListTransactionsCursor `json:"next_cursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	List(ctx context.Context, userID uuid.UUID, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, int64, error)
}

// ListTransactionsHandler handles GET /all_transaction/.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/all_transaction/",
		Summary:     "List transactions",
		Description: "Returns the user's transactions, as risk taker or syndicate member, using cursor-based pagination.",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, h.handle)
}

// parseListTransactionsInput parses the cursor query parameters. A request
// without a limit carries no cursor and the service uses its default limit.
func parseListTransactionsInput(input *ListTransactionsInput) (*service.TransactionCursor, error) {
	if input.Limit == 0 {
		return nil, nil
	}

	maxCreationTime, err := time.Parse(time.RFC3339, input.MaxCreationTime)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid cursor max_creation_time", err)
	}

	return &service.TransactionCursor{
		Position:        input.Position,
		Limit:           input.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "not authenticated")
	}

	requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, nextCursor, count, err := h.TransactionService.List(ctx, identity.UserID, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list transactions", err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions:     make([]Transaction, len(transactions)),
		TransactionCount: count,
	}
	for i := range transactions {
		resp.Transactions[i] = toAPITransaction(&transactions[i])
	}

	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339),
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
