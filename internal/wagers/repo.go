package wagers

import (
	"context"

	"github.com/google/uuid"
	"github.com/wagerworks/wagerbook-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for bets and the aggregates a bet touches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindEvent(ctx context.Context, id int64) (*models.Event, error)
	CreateBet(ctx context.Context, bet *models.Bet) error
	IncrementStakeWithinLimit(ctx context.Context, bettorID string, amountCents, limitCents int64) (bool, error)
	IncrementOpenEventPool(ctx context.Context, eventID int64, amountCents int64) (bool, error)
	IncrementOptionPool(ctx context.Context, eventID int64, optionIdx int, amountCents int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a wager repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
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

func (r *repository) CreateBet(ctx context.Context, bet *models.Bet) error {
	if bet.ID == uuid.Nil {
		bet.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(bet).Error
}

// IncrementStakeWithinLimit adds the amount to the bettor's lifetime stake
// only when the new total stays at or under the cap. The guarded UPDATE's
// affected-row count carries the answer, so two concurrent bets cannot both
// slip under the cap.
func (r *repository) IncrementStakeWithinLimit(ctx context.Context, bettorID string, amountCents, limitCents int64) (bool, error) {
	if err := r.db.WithContext(ctx).Exec(`
		INSERT INTO user_stakes (bettor_id, total_bet_amount_cents, updated_at)
		VALUES (?, 0, CURRENT_TIMESTAMP)
		ON CONFLICT (bettor_id) DO NOTHING
	`, bettorID).Error; err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).Exec(`
		UPDATE user_stakes
		SET total_bet_amount_cents = total_bet_amount_cents + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE bettor_id = ? AND total_bet_amount_cents + ? <= ?
	`, amountCents, bettorID, amountCents, limitCents)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementOpenEventPool grows the event's total pool only while the event
// still accepts bets.
func (r *repository) IncrementOpenEventPool(ctx context.Context, eventID int64, amountCents int64) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE events
		SET total_pool_cents = total_pool_cents + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'open'
	`, amountCents, eventID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) IncrementOptionPool(ctx context.Context, eventID int64, optionIdx int, amountCents int64) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE event_options
		SET pool_cents = pool_cents + ?
		WHERE event_id = ? AND idx = ?
	`, amountCents, eventID, optionIdx)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
