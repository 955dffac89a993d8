package models

import "time"

// UserStake aggregates everything a bettor has wagered across all events in
// this ledger. The total only ever grows; it exists solely to enforce the
// responsible-gambling ceiling at bet time.
type UserStake struct {
	BettorID            string    `gorm:"column:bettor_id;primaryKey"`
	TotalBetAmountCents int64     `gorm:"column:total_bet_amount_cents;not null;default:0"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserStake) TableName() string { return "user_stakes" }
