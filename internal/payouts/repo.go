package payouts

import (
	"context"

	"github.com/wagerworks/wagerbook-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository provides the read surface the payout engine needs.
type Repository interface {
	FindEvent(ctx context.Context, id int64) (*models.Event, error)
	SumBettorStakeOnOption(ctx context.Context, eventID int64, optionIdx int, bettorID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a payouts repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindEvent(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("idx ASC")
		}).
		First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) SumBettorStakeOnOption(ctx context.Context, eventID int64, optionIdx int, bettorID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Bet{}).
		Where("event_id = ? AND option_idx = ? AND bettor_id = ?", eventID, optionIdx, bettorID).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
