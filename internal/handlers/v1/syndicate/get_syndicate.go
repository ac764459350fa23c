package syndicate

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/logging"
	"github.com/carson-networks/syndicate-server/internal/service"
)

// GetSyndicateResponseBody is the response body for the roster endpoint.
type GetSyndicateResponseBody struct {
	User    Member   `json:"user" doc:"The authenticated user"`
	Friends []Friend `json:"friends" doc:"Accepted syndicate members"`
}

// GetSyndicateOutput is the Huma output for the roster endpoint.
type GetSyndicateOutput struct {
	Body GetSyndicateResponseBody
}

// rosterReader is the interface for reading the accepted-friend roster.
type rosterReader interface {
	Roster(ctx context.Context, identity auth.Identity) (*service.SyndicateData, error)
}

// GetSyndicateHandler handles GET /syndicate/.
type GetSyndicateHandler struct {
	SyndicateService rosterReader
}

// NewGetSyndicateHandler creates a new GetSyndicateHandler.
func NewGetSyndicateHandler(svc rosterReader) *GetSyndicateHandler {
	return &GetSyndicateHandler{SyndicateService: svc}
}

// Register registers the roster endpoint with the Huma API.
func (h *GetSyndicateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-syndicate",
		Method:      http.MethodGet,
		Path:        "/syndicate/",
		Summary:     "Get syndicate roster",
		Description: "Returns the authenticated user's accepted syndicate members.",
		Tags:        []string{"Syndicate"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, h.handle)
}

func (h *GetSyndicateHandler) handle(ctx context.Context, _ *struct{}) (*GetSyndicateOutput, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "not authenticated")
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("syndicateRosterMs")
	}
	data, err := h.SyndicateService.Roster(ctx, identity)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to load syndicate", err)
	}

	if logData != nil {
		logData.AddData("friendCount", len(data.Friends))
	}

	return &GetSyndicateOutput{Body: GetSyndicateResponseBody{
		User: Member{
			UserID:   data.User.UserID.String(),
			Username: data.User.Username,
		},
		Friends: toAPIFriends(data.Friends),
	}}, nil
}
