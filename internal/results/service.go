package results

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wagerworks/wagerbook-backend/pkg/enums"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
	"github.com/wagerworks/wagerbook-backend/pkg/outbox"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines the oracle resolution operations.
type Service interface {
	ReportResult(ctx context.Context, input ReportResultInput) error
}

type service struct {
	repo          Repository
	tx            txRunner
	outbox        outboxPublisher
	oracleAddress string
}

// NewService builds an oracle resolution service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher, oracleAddress string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("results repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if strings.TrimSpace(oracleAddress) == "" {
		return nil, fmt.Errorf("oracle address required")
	}
	return &service{
		repo:          repo,
		tx:            tx,
		outbox:        outbox,
		oracleAddress: oracleAddress,
	}, nil
}

func (s *service) ReportResult(ctx context.Context, input ReportResultInput) error {
	if input.Sender != s.oracleAddress {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}
	if input.EventID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "event id must be positive")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		event, err := repo.FindEvent(ctx, input.EventID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeInvalidEvent, "Invalid event or result already reported")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
		}
		if event.IsResolved() {
			return pkgerrors.New(pkgerrors.CodeInvalidEvent, "Invalid event or result already reported")
		}
		if !event.HasOption(input.ResultOption) {
			return pkgerrors.New(pkgerrors.CodeInvalidOption, "Invalid option")
		}

		resolved, err := repo.MarkResolved(ctx, input.EventID, input.ResultOption)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark event resolved")
		}
		if !resolved {
			// Another report won the swap between load and write.
			return pkgerrors.New(pkgerrors.CodeInvalidEvent, "Invalid event or result already reported")
		}

		domainEvent := outbox.DomainEvent{
			EventType:     enums.EventEventResolved,
			AggregateType: enums.AggregateBettingEvent,
			AggregateID:   strconv.FormatInt(event.ID, 10),
			Version:       1,
			Actor:         &outbox.ActorRef{ActorID: input.Sender},
			Data: EventResolvedEvent{
				EventID:        event.ID,
				ResultOption:   input.ResultOption,
				TotalPoolCents: event.TotalPoolCents,
			},
		}
		return s.outbox.Emit(ctx, tx, domainEvent)
	})
}
