package models

import (
	"time"

	"github.com/wagerworks/wagerbook-backend/pkg/enums"
)

// Event is a wagering event with a fixed option set. The serial primary key
// doubles as the public event identifier: assigned once, strictly increasing,
// never reused.
type Event struct {
	ID             int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Description    string            `gorm:"column:description;not null"`
	Status         enums.EventStatus `gorm:"column:status;type:event_status_enum;not null;default:open"`
	ResultOption   *int              `gorm:"column:result_option"`
	TotalPoolCents int64             `gorm:"column:total_pool_cents;not null;default:0"`
	Options        []EventOption     `gorm:"foreignKey:EventID;references:ID"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Event) TableName() string { return "events" }

// IsOpen reports whether the event still accepts bets.
func (e *Event) IsOpen() bool {
	return e.Status == enums.EventStatusOpen
}

// IsResolved reports whether the oracle has reported a result.
func (e *Event) IsResolved() bool {
	return e.ResultOption != nil
}

// HasOption reports whether idx addresses one of the event's fixed options.
func (e *Event) HasOption(idx int) bool {
	return idx >= 0 && idx < len(e.Options)
}

// EventOption is one of the fixed outcomes an event can resolve to.
// PoolCents is the running sum of stakes placed on the option, maintained
// in the same transaction as every bet insert.
type EventOption struct {
	EventID   int64  `gorm:"column:event_id;primaryKey"`
	Idx       int    `gorm:"column:idx;primaryKey"`
	Label     string `gorm:"column:label;not null"`
	PoolCents int64  `gorm:"column:pool_cents;not null;default:0"`
}

func (EventOption) TableName() string { return "event_options" }
