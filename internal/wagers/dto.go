package wagers

import (
	"time"

	"github.com/google/uuid"
)

// PlaceBetInput carries everything a bet placement requires. BettorID is the
// opaque caller identity threaded through by the API layer.
type PlaceBetInput struct {
	BettorID    string
	EventID     int64
	OptionIdx   int
	AmountCents int64
}

// BetReceipt is returned to the caller once a bet is recorded.
type BetReceipt struct {
	BetID       uuid.UUID `json:"bet_id"`
	EventID     int64     `json:"event_id"`
	OptionIdx   int       `json:"option_idx"`
	AmountCents int64     `json:"amount_cents"`
	PlacedAt    time.Time `json:"placed_at"`
}

// BetPlacedEvent is emitted when a bet is recorded.
type BetPlacedEvent struct {
	BetID       uuid.UUID `json:"bet_id"`
	EventID     int64     `json:"event_id"`
	OptionIdx   int       `json:"option_idx"`
	BettorID    string    `json:"bettor_id"`
	AmountCents int64     `json:"amount_cents"`
}
