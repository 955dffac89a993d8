package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagerworks/wagerbook-backend/api/middleware"
	"github.com/wagerworks/wagerbook-backend/api/responses"
	"github.com/wagerworks/wagerbook-backend/api/validators"
	"github.com/wagerworks/wagerbook-backend/internal/results"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
	"github.com/wagerworks/wagerbook-backend/pkg/logger"
)

type reportResultPayload struct {
	Result *int `json:"result" validate:"required,min=0"`
}

// ResultsReport records the oracle's resolution for an event.
func ResultsReport(svc results.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "results service unavailable"))
			return
		}

		sender := middleware.ActorIDFromContext(ctx)
		if sender == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
			return
		}

		eventID, err := validators.ParsePathInt64(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload reportResultPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = svc.ReportResult(ctx, results.ReportResultInput{
			Sender:       sender,
			EventID:      eventID,
			ResultOption: *payload.Result,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"event_id": eventID, "result": *payload.Result})
	}
}
