package events

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wagerworks/wagerbook-backend/pkg/db/models"
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

// Service defines the event registry operations.
type Service interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*EventSummary, error)
	GetEvent(ctx context.Context, id int64) (*EventSummary, error)
	ListEvents(ctx context.Context, input ListEventsInput) ([]EventSummary, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds an event registry service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("events repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outbox}, nil
}

func (s *service) CreateEvent(ctx context.Context, input CreateEventInput) (*EventSummary, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event description required")
	}
	if len(input.Options) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least two options required")
	}

	options := make([]models.EventOption, 0, len(input.Options))
	labels := make([]string, 0, len(input.Options))
	for i, label := range input.Options {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("option %d label required", i))
		}
		options = append(options, models.EventOption{Idx: i, Label: trimmed})
		labels = append(labels, trimmed)
	}

	event := &models.Event{
		Description: description,
		Status:      enums.EventStatusOpen,
		Options:     options,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create event")
		}

		domainEvent := outbox.DomainEvent{
			EventType:     enums.EventEventCreated,
			AggregateType: enums.AggregateBettingEvent,
			AggregateID:   strconv.FormatInt(event.ID, 10),
			Version:       1,
			Actor:         buildActor(input.ActorID),
			Data: EventCreatedEvent{
				EventID:     event.ID,
				Description: event.Description,
				Options:     labels,
			},
		}
		return s.outbox.Emit(ctx, tx, domainEvent)
	})
	if err != nil {
		return nil, err
	}
	return summarize(event), nil
}

func (s *service) GetEvent(ctx context.Context, id int64) (*EventSummary, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id must be positive")
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeEventNotFound, "Event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	return summarize(event), nil
}

func (s *service) ListEvents(ctx context.Context, input ListEventsInput) ([]EventSummary, error) {
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	records, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}

	summaries := make([]EventSummary, 0, len(records))
	for i := range records {
		summaries = append(summaries, *summarize(&records[i]))
	}
	return summaries, nil
}

func buildActor(actorID string) *outbox.ActorRef {
	if strings.TrimSpace(actorID) == "" {
		return nil
	}
	return &outbox.ActorRef{ActorID: actorID}
}
