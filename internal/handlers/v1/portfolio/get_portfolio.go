package portfolio

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/logging"
	"github.com/carson-networks/syndicate-server/internal/service"
)

// GetPortfolioResponseBody is the response body for the portfolio summary.
type GetPortfolioResponseBody struct {
	UserInvestedAmount  string `json:"user_invested_amount" doc:"Sum of the user's splitwise principal across transactions"`
	TotalInterestAmount string `json:"total_interest_amount" doc:"Sum of per-entry interest money on the user's shares"`
	ROIPercentage       string `json:"roi_percentage" doc:"Interest over invested in percent, 0 when nothing is invested"`
	ActiveTransactions  int    `json:"active_transactions" doc:"Number of transactions the user participates in"`
	RiskTakenPrincipal  string `json:"risk_taken_principal" doc:"Total principal of transactions the user originated"`
	RiskTakenInterest   string `json:"risk_taken_interest" doc:"Expected interest on originated transactions"`
}

// GetPortfolioOutput is the Huma output for the portfolio summary.
type GetPortfolioOutput struct {
	Body GetPortfolioResponseBody
}

// portfolioSummarizer is the interface for computing portfolio summaries.
type portfolioSummarizer interface {
	Summary(ctx context.Context, userID uuid.UUID) (service.PortfolioSummary, error)
}

// GetPortfolioHandler handles GET /portfolio/.
type GetPortfolioHandler struct {
	PortfolioService portfolioSummarizer
}

// NewGetPortfolioHandler creates a new GetPortfolioHandler.
func NewGetPortfolioHandler(svc portfolioSummarizer) *GetPortfolioHandler {
	return &GetPortfolioHandler{PortfolioService: svc}
}

// Register registers the portfolio endpoint with the Huma API.
func (h *GetPortfolioHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-portfolio",
		Method:      http.MethodGet,
		Path:        "/portfolio/",
		Summary:     "Get portfolio",
		Description: "Aggregates the user's invested principal, earned interest, and return across their transactions.",
		Tags:        []string{"Portfolio"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, h.handle)
}

func (h *GetPortfolioHandler) handle(ctx context.Context, _ *struct{}) (*GetPortfolioOutput, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "not authenticated")
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("portfolioSummaryMs")
	}
	summary, err := h.PortfolioService.Summary(ctx, identity.UserID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute portfolio", err)
	}

	return &GetPortfolioOutput{Body: GetPortfolioResponseBody{
		UserInvestedAmount:  summary.InvestedAmount.String(),
		TotalInterestAmount: summary.InterestAmount.String(),
		ROIPercentage:       summary.ROIPercent.String(),
		ActiveTransactions:  summary.ActiveTransactions,
		RiskTakenPrincipal:  summary.RiskTakenPrincipal.String(),
		RiskTakenInterest:   summary.RiskTakenInterest.String(),
	}}, nil
}
