package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagerworks/wagerbook-backend/api/middleware"
	"github.com/wagerworks/wagerbook-backend/api/responses"
	"github.com/wagerworks/wagerbook-backend/api/validators"
	"github.com/wagerworks/wagerbook-backend/internal/payouts"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
	"github.com/wagerworks/wagerbook-backend/pkg/logger"
)

// WinningsGet quotes the caller's pari-mutuel share of a resolved event.
func WinningsGet(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payouts service unavailable"))
			return
		}

		claimant := middleware.ActorIDFromContext(ctx)
		if claimant == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "claimant identity missing"))
			return
		}

		eventID, err := validators.ParsePathInt64(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.ClaimWinnings(ctx, payouts.ClaimInput{Claimant: claimant, EventID: eventID})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
