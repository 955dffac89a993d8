package events

import (
	"time"

	"github.com/wagerworks/wagerbook-backend/pkg/db/models"
	"github.com/wagerworks/wagerbook-backend/pkg/enums"
)

// CreateEventInput carries the data required to register a new event.
type CreateEventInput struct {
	Description string
	Options     []string
	ActorID     string
}

// ListEventsInput describes the pagination supported by the event list.
type ListEventsInput struct {
	Limit  int
	Offset int
}

// OptionSummary exposes one outcome of an event with its running pool.
type OptionSummary struct {
	Idx       int    `json:"idx"`
	Label     string `json:"label"`
	PoolCents int64  `json:"pool_cents"`
}

// EventSummary exposes the aggregated fields returned by the event reads.
type EventSummary struct {
	ID             int64             `json:"id"`
	Description    string            `json:"description"`
	Status         enums.EventStatus `json:"status"`
	ResultOption   *int              `json:"result_option,omitempty"`
	TotalPoolCents int64             `json:"total_pool_cents"`
	Options        []OptionSummary   `json:"options"`
	CreatedAt      time.Time         `json:"created_at"`
}

// EventCreatedEvent is emitted when a new event is registered.
type EventCreatedEvent struct {
	EventID     int64    `json:"event_id"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

func summarize(event *models.Event) *EventSummary {
	options := make([]OptionSummary, 0, len(event.Options))
	for _, opt := range event.Options {
		options = append(options, OptionSummary{
			Idx:       opt.Idx,
			Label:     opt.Label,
			PoolCents: opt.PoolCents,
		})
	}
	return &EventSummary{
		ID:             event.ID,
		Description:    event.Description,
		Status:         event.Status,
		ResultOption:   event.ResultOption,
		TotalPoolCents: event.TotalPoolCents,
		Options:        options,
		CreatedAt:      event.CreatedAt,
	}
}
