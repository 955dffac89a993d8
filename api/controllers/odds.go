package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagerworks/wagerbook-backend/api/responses"
	"github.com/wagerworks/wagerbook-backend/api/validators"
	"github.com/wagerworks/wagerbook-backend/internal/odds"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
	"github.com/wagerworks/wagerbook-backend/pkg/logger"
)

// OddsGet returns the current pari-mutuel odds multiple for one option.
func OddsGet(svc odds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "odds service unavailable"))
			return
		}

		eventID, err := validators.ParsePathInt64(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		option, err := validators.ParsePathInt(chi.URLParam(r, "option"), "option")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		value, err := svc.CalculateOdds(ctx, eventID, option)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"event_id": eventID,
			"option":   option,
			"odds":     value,
		})
	}
}
