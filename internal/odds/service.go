package odds

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wagerworks/wagerbook-backend/pkg/db/models"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
	"github.com/wagerworks/wagerbook-backend/pkg/logger"
	"gorm.io/gorm"
)

// Repository provides the read surface the odds calculator needs.
type Repository interface {
	FindEvent(ctx context.Context, id int64) (*models.Event, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an odds repository bound to the provided database.
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

// Service defines the odds calculator operations.
type Service interface {
	CalculateOdds(ctx context.Context, eventID int64, optionIdx int) (int64, error)
}

type service struct {
	repo  Repository
	cache *Cache
	logg  *logger.Logger
}

// NewService builds an odds calculator. Cache and logger are optional.
func NewService(repo Repository, cache *Cache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("odds repository required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

func (s *service) CalculateOdds(ctx context.Context, eventID int64, optionIdx int) (int64, error) {
	if eventID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeEventNotFound, "Event not found")
	}

	if value, ok := s.cache.Get(ctx, eventID, optionIdx); ok {
		return value, nil
	}

	event, err := s.repo.FindEvent(ctx, eventID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, pkgerrors.New(pkgerrors.CodeEventNotFound, "Event not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}

	value := computeOdds(event, optionIdx)

	if cacheErr := s.cache.Put(ctx, eventID, optionIdx, value); cacheErr != nil && s.logg != nil {
		warnCtx := s.logg.WithField(s.logg.WithEventID(ctx, eventID), "error", cacheErr.Error())
		s.logg.Warn(warnCtx, "odds cache write failed")
	}
	return value, nil
}

// computeOdds returns floor(totalPool * 100 / optionPool): the percentage
// multiple a winning stake on that option would return. An unstaked or
// unknown option yields 0 rather than an error.
func computeOdds(event *models.Event, optionIdx int) int64 {
	if !event.HasOption(optionIdx) {
		return 0
	}
	optionPool := event.Options[optionIdx].PoolCents
	if optionPool <= 0 {
		return 0
	}
	total := decimal.NewFromInt(event.TotalPoolCents)
	pool := decimal.NewFromInt(optionPool)
	return total.Mul(decimal.NewFromInt(100)).Div(pool).Floor().IntPart()
}
