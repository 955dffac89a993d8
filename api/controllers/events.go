package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagerworks/wagerbook-backend/api/middleware"
	"github.com/wagerworks/wagerbook-backend/api/responses"
	"github.com/wagerworks/wagerbook-backend/api/validators"
	"github.com/wagerworks/wagerbook-backend/internal/events"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
	"github.com/wagerworks/wagerbook-backend/pkg/logger"
)

type createEventPayload struct {
	Description string   `json:"description" validate:"required"`
	Options     []string `json:"options" validate:"required,min=2"`
}

// EventsCreate registers a new event and returns its assigned id.
func EventsCreate(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		var payload createEventPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := svc.CreateEvent(ctx, events.CreateEventInput{
			Description: payload.Description,
			Options:     payload.Options,
			ActorID:     middleware.ActorIDFromContext(ctx),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, summary)
	}
}

// EventsGet returns a single event with its options and pools.
func EventsGet(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		eventID, err := validators.ParsePathInt64(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := svc.GetEvent(ctx, eventID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// EventsList returns a page of events ordered by id.
func EventsList(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1_000_000)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summaries, err := svc.ListEvents(ctx, events.ListEventsInput{Limit: limit, Offset: offset})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"events": summaries})
	}
}
