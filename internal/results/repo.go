package results

import (
	"context"

	"github.com/wagerworks/wagerbook-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages the resolution side of events.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindEvent(ctx context.Context, id int64) (*models.Event, error)
	MarkResolved(ctx context.Context, id int64, resultOption int) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a results repository bound to the provided database.
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

// MarkResolved performs the write-once Open to Closed transition. The
// result_option IS NULL guard makes the transition a compare-and-swap: of
// two concurrent reports only one sees an affected row.
func (r *repository) MarkResolved(ctx context.Context, id int64, resultOption int) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE events
		SET status = 'closed',
			result_option = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND result_option IS NULL
	`, resultOption, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
