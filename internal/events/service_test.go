package events

import (
	"context"
	"testing"

	"github.com/wagerworks/wagerbook-backend/pkg/db/models"
	"github.com/wagerworks/wagerbook-backend/pkg/enums"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
	"github.com/wagerworks/wagerbook-backend/pkg/outbox"
	"gorm.io/gorm"
)

type fakeRepository struct {
	nextID   int64
	createFn func(ctx context.Context, event *models.Event) error
	findFn   func(ctx context.Context, id int64) (*models.Event, error)
	listFn   func(ctx context.Context, limit, offset int) ([]models.Event, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Create(ctx context.Context, event *models.Event) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	f.nextID++
	event.ID = f.nextID
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) List(ctx context.Context, limit, offset int) ([]models.Event, error) {
	if f.listFn != nil {
		return f.listFn(ctx, limit, offset)
	}
	return nil, nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

type fakeOutbox struct {
	events []outbox.DomainEvent
}

func (f *fakeOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	f.events = append(f.events, event)
	return nil
}

func newTestService(t *testing.T, repo Repository, ob *fakeOutbox) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{}, ob)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestService_CreateEvent(t *testing.T) {
	repo := &fakeRepository{}
	ob := &fakeOutbox{}
	svc := newTestService(t, repo, ob)

	got, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Description: "Will it rain tomorrow?",
		Options:     []string{"Yes", "No"},
		ActorID:     "creator-1",
	})
	if err != nil {
		t.Fatalf("CreateEvent error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("expected first event id 1, got %d", got.ID)
	}
	if got.Status != enums.EventStatusOpen {
		t.Fatalf("expected open status, got %q", got.Status)
	}
	if got.TotalPoolCents != 0 {
		t.Fatalf("expected empty pool, got %d", got.TotalPoolCents)
	}
	if len(got.Options) != 2 || got.Options[0].Label != "Yes" || got.Options[1].Idx != 1 {
		t.Fatalf("unexpected options: %+v", got.Options)
	}

	if len(ob.events) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(ob.events))
	}
	emitted := ob.events[0]
	if emitted.EventType != enums.EventEventCreated {
		t.Fatalf("unexpected event type %q", emitted.EventType)
	}
	if emitted.AggregateID != "1" {
		t.Fatalf("unexpected aggregate id %q", emitted.AggregateID)
	}
	if emitted.Actor == nil || emitted.Actor.ActorID != "creator-1" {
		t.Fatalf("unexpected actor: %+v", emitted.Actor)
	}
}

func TestService_CreateEventMonotonicIDs(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo, &fakeOutbox{})

	first, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Description: "first",
		Options:     []string{"A", "B"},
	})
	if err != nil {
		t.Fatalf("CreateEvent error: %v", err)
	}
	second, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Description: "second",
		Options:     []string{"A", "B", "C"},
	})
	if err != nil {
		t.Fatalf("CreateEvent error: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("ids must increase: first=%d second=%d", first.ID, second.ID)
	}
}

func TestService_CreateEventValidation(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, &fakeOutbox{})

	tests := []struct {
		name  string
		input CreateEventInput
	}{
		{name: "empty description", input: CreateEventInput{Description: "   ", Options: []string{"A", "B"}}},
		{name: "no options", input: CreateEventInput{Description: "x"}},
		{name: "single option", input: CreateEventInput{Description: "x", Options: []string{"A"}}},
		{name: "blank option label", input: CreateEventInput{Description: "x", Options: []string{"A", " "}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateEvent(context.Background(), tc.input)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestService_GetEventNotFound(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, &fakeOutbox{})

	_, err := svc.GetEvent(context.Background(), 99)
	if !pkgerrors.IsCode(err, pkgerrors.CodeEventNotFound) {
		t.Fatalf("expected event not found, got %v", err)
	}
}

func TestService_GetEvent(t *testing.T) {
	result := 1
	repo := &fakeRepository{
		findFn: func(ctx context.Context, id int64) (*models.Event, error) {
			return &models.Event{
				ID:             id,
				Description:    "resolved",
				Status:         enums.EventStatusClosed,
				ResultOption:   &result,
				TotalPoolCents: 300,
				Options: []models.EventOption{
					{EventID: id, Idx: 0, Label: "A", PoolCents: 100},
					{EventID: id, Idx: 1, Label: "B", PoolCents: 200},
				},
			}, nil
		},
	}
	svc := newTestService(t, repo, &fakeOutbox{})

	got, err := svc.GetEvent(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetEvent error: %v", err)
	}
	if got.ID != 7 || got.ResultOption == nil || *got.ResultOption != 1 {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if len(got.Options) != 2 || got.Options[1].PoolCents != 200 {
		t.Fatalf("unexpected options: %+v", got.Options)
	}
}

func TestService_ListEventsClampsLimit(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &fakeRepository{
		listFn: func(ctx context.Context, limit, offset int) ([]models.Event, error) {
			gotLimit, gotOffset = limit, offset
			return []models.Event{{ID: 1, Description: "a"}}, nil
		},
	}
	svc := newTestService(t, repo, &fakeOutbox{})

	got, err := svc.ListEvents(context.Background(), ListEventsInput{Limit: 1000, Offset: -5})
	if err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}
	if gotLimit != 50 || gotOffset != 0 {
		t.Fatalf("expected clamped pagination, got limit=%d offset=%d", gotLimit, gotOffset)
	}
	if len(got) != 1 {
		t.Fatalf("expected one summary, got %d", len(got))
	}
}
