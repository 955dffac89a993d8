package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagerworks/wagerbook-backend/api/middleware"
	"github.com/wagerworks/wagerbook-backend/api/responses"
	"github.com/wagerworks/wagerbook-backend/api/validators"
	"github.com/wagerworks/wagerbook-backend/internal/wagers"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
	"github.com/wagerworks/wagerbook-backend/pkg/logger"
)

type placeBetPayload struct {
	Option      *int  `json:"option" validate:"required,min=0"`
	AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
}

// BetsPlace records a stake on one option of an open event.
func BetsPlace(svc wagers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wagers service unavailable"))
			return
		}

		bettorID := middleware.ActorIDFromContext(ctx)
		if bettorID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "bettor identity missing"))
			return
		}

		eventID, err := validators.ParsePathInt64(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload placeBetPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		receipt, err := svc.PlaceBet(ctx, wagers.PlaceBetInput{
			BettorID:    bettorID,
			EventID:     eventID,
			OptionIdx:   *payload.Option,
			AmountCents: payload.AmountCents,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
