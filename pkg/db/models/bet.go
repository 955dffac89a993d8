package models

import (
	"time"

	"github.com/google/uuid"
)

// Bet is an immutable stake on one option of an event. Rows are append-only:
// never updated, never deleted.
type Bet struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EventID     int64     `gorm:"column:event_id;not null;index"`
	OptionIdx   int       `gorm:"column:option_idx;not null"`
	BettorID    string    `gorm:"column:bettor_id;not null;index"`
	AmountCents int64     `gorm:"column:amount_cents;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Bet) TableName() string { return "bets" }
