package wagers

import (
	"context"
	"fmt"
	"strings"

	"github.com/wagerworks/wagerbook-backend/pkg/db/models"
	"github.com/wagerworks/wagerbook-backend/pkg/enums"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
	"github.com/wagerworks/wagerbook-backend/pkg/logger"
	"github.com/wagerworks/wagerbook-backend/pkg/metrics"
	"github.com/wagerworks/wagerbook-backend/pkg/outbox"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// OddsInvalidator drops cached odds for an event after its pools change.
type OddsInvalidator interface {
	InvalidateEvent(ctx context.Context, eventID int64, optionCount int) error
}

// Service defines the wager intake operations.
type Service interface {
	PlaceBet(ctx context.Context, input PlaceBetInput) (*BetReceipt, error)
}

type service struct {
	repo       Repository
	tx         txRunner
	outbox     outboxPublisher
	odds       OddsInvalidator
	intake     *metrics.IntakeMetrics
	logg       *logger.Logger
	limitCents int64
}

// NewService builds a wager intake service with the required dependencies.
// The odds invalidator, metrics and logger are optional.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher, odds OddsInvalidator, intake *metrics.IntakeMetrics, logg *logger.Logger, limitCents int64) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wagers repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if limitCents <= 0 {
		return nil, fmt.Errorf("stake limit must be positive")
	}
	return &service{
		repo:       repo,
		tx:         tx,
		outbox:     outbox,
		odds:       odds,
		intake:     intake,
		logg:       logg,
		limitCents: limitCents,
	}, nil
}

func (s *service) PlaceBet(ctx context.Context, input PlaceBetInput) (*BetReceipt, error) {
	receipt, optionCount, err := s.placeBet(ctx, input)
	if err != nil {
		s.intake.IncRejected(rejectionReason(err))
		return nil, err
	}

	s.intake.IncPlaced(input.AmountCents)

	if s.odds != nil {
		if cacheErr := s.odds.InvalidateEvent(ctx, input.EventID, optionCount); cacheErr != nil && s.logg != nil {
			warnCtx := s.logg.WithField(s.logg.WithEventID(ctx, input.EventID), "error", cacheErr.Error())
			s.logg.Warn(warnCtx, "odds cache invalidation failed")
		}
	}
	return receipt, nil
}

func (s *service) placeBet(ctx context.Context, input PlaceBetInput) (*BetReceipt, int, error) {
	if strings.TrimSpace(input.BettorID) == "" {
		return nil, 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "bettor identity missing")
	}
	if input.EventID <= 0 {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "event id must be positive")
	}
	if input.AmountCents <= 0 {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "bet amount must be positive")
	}

	var (
		bet         models.Bet
		optionCount int
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		event, err := repo.FindEvent(ctx, input.EventID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeInvalidEvent, "Invalid event or bet closed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
		}
		if !event.IsOpen() {
			return pkgerrors.New(pkgerrors.CodeInvalidEvent, "Invalid event or bet closed")
		}
		if !event.HasOption(input.OptionIdx) {
			return pkgerrors.New(pkgerrors.CodeInvalidOption, "Invalid option")
		}
		optionCount = len(event.Options)

		withinLimit, err := repo.IncrementStakeWithinLimit(ctx, input.BettorID, input.AmountCents, s.limitCents)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update bettor stake")
		}
		if !withinLimit {
			return pkgerrors.New(pkgerrors.CodeLimitExceeded, "Exceeds responsible gambling limit")
		}

		bet = models.Bet{
			EventID:     input.EventID,
			OptionIdx:   input.OptionIdx,
			BettorID:    input.BettorID,
			AmountCents: input.AmountCents,
		}
		if err := repo.CreateBet(ctx, &bet); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record bet")
		}

		// The event may have been resolved between the read above and this
		// write; the guard keeps the pool untouched in that case and the
		// whole placement rolls back.
		stillOpen, err := repo.IncrementOpenEventPool(ctx, input.EventID, input.AmountCents)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grow event pool")
		}
		if !stillOpen {
			return pkgerrors.New(pkgerrors.CodeInvalidEvent, "Invalid event or bet closed")
		}

		optionFound, err := repo.IncrementOptionPool(ctx, input.EventID, input.OptionIdx, input.AmountCents)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grow option pool")
		}
		if !optionFound {
			return pkgerrors.New(pkgerrors.CodeDependency, "option pool row missing")
		}

		domainEvent := outbox.DomainEvent{
			EventType:     enums.EventBetPlaced,
			AggregateType: enums.AggregateBet,
			AggregateID:   bet.ID.String(),
			Version:       1,
			Actor:         &outbox.ActorRef{ActorID: input.BettorID},
			Data: BetPlacedEvent{
				BetID:       bet.ID,
				EventID:     input.EventID,
				OptionIdx:   input.OptionIdx,
				BettorID:    input.BettorID,
				AmountCents: input.AmountCents,
			},
		}
		return s.outbox.Emit(ctx, tx, domainEvent)
	})
	if err != nil {
		return nil, 0, err
	}

	return &BetReceipt{
		BetID:       bet.ID,
		EventID:     bet.EventID,
		OptionIdx:   bet.OptionIdx,
		AmountCents: bet.AmountCents,
		PlacedAt:    bet.CreatedAt,
	}, optionCount, nil
}

func rejectionReason(err error) string {
	if coded := pkgerrors.As(err); coded != nil {
		switch coded.Code() {
		case pkgerrors.CodeInvalidEvent:
			return "invalid_event"
		case pkgerrors.CodeInvalidOption:
			return "invalid_option"
		case pkgerrors.CodeLimitExceeded:
			return "limit_exceeded"
		case pkgerrors.CodeUnauthorized:
			return "unauthorized"
		case pkgerrors.CodeValidation:
			return "validation"
		}
	}
	return "internal"
}
