package wagers

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
	event  *models.Event
	stakes map[string]int64
	bets   []models.Bet

	eventPoolClosed bool
	optionMissing   bool
}

func newFakeRepository(event *models.Event) *fakeRepository {
	return &fakeRepository{event: event, stakes: map[string]int64{}}
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) FindEvent(ctx context.Context, id int64) (*models.Event, error) {
	if f.event == nil || f.event.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.event, nil
}

func (f *fakeRepository) CreateBet(ctx context.Context, bet *models.Bet) error {
	f.bets = append(f.bets, *bet)
	return nil
}

func (f *fakeRepository) IncrementStakeWithinLimit(ctx context.Context, bettorID string, amountCents, limitCents int64) (bool, error) {
	if f.stakes[bettorID]+amountCents > limitCents {
		return false, nil
	}
	f.stakes[bettorID] += amountCents
	return true, nil
}

func (f *fakeRepository) IncrementOpenEventPool(ctx context.Context, eventID int64, amountCents int64) (bool, error) {
	if f.eventPoolClosed {
		return false, nil
	}
	f.event.TotalPoolCents += amountCents
	return true, nil
}

func (f *fakeRepository) IncrementOptionPool(ctx context.Context, eventID int64, optionIdx int, amountCents int64) (bool, error) {
	if f.optionMissing {
		return false, nil
	}
	f.event.Options[optionIdx].PoolCents += amountCents
	return true, nil
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

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateEvent(ctx context.Context, eventID int64, optionCount int) error {
	f.calls++
	return nil
}

func openEvent(id int64) *models.Event {
	return &models.Event{
		ID:          id,
		Description: "test event",
		Status:      enums.EventStatusOpen,
		Options: []models.EventOption{
			{EventID: id, Idx: 0, Label: "A"},
			{EventID: id, Idx: 1, Label: "B"},
		},
	}
}

const testLimit = int64(1_000_000_000)

func newTestService(t *testing.T, repo Repository, ob *fakeOutbox, odds OddsInvalidator) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{}, ob, odds, nil, nil, testLimit)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestService_PlaceBet(t *testing.T) {
	repo := newFakeRepository(openEvent(1))
	ob := &fakeOutbox{}
	odds := &fakeInvalidator{}
	svc := newTestService(t, repo, ob, odds)

	receipt, err := svc.PlaceBet(context.Background(), PlaceBetInput{
		BettorID:    "bettor-x",
		EventID:     1,
		OptionIdx:   0,
		AmountCents: 5_000,
	})
	if err != nil {
		t.Fatalf("PlaceBet error: %v", err)
	}
	if receipt.EventID != 1 || receipt.OptionIdx != 0 || receipt.AmountCents != 5_000 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}

	if len(repo.bets) != 1 {
		t.Fatalf("expected one recorded bet, got %d", len(repo.bets))
	}
	if repo.event.TotalPoolCents != 5_000 {
		t.Fatalf("event pool not updated: %d", repo.event.TotalPoolCents)
	}
	if repo.event.Options[0].PoolCents != 5_000 {
		t.Fatalf("option pool not updated: %d", repo.event.Options[0].PoolCents)
	}
	if repo.stakes["bettor-x"] != 5_000 {
		t.Fatalf("stake aggregate not updated: %d", repo.stakes["bettor-x"])
	}

	if len(ob.events) != 1 || ob.events[0].EventType != enums.EventBetPlaced {
		t.Fatalf("expected bet_placed outbox event, got %+v", ob.events)
	}
	if odds.calls != 1 {
		t.Fatalf("expected odds invalidation, got %d calls", odds.calls)
	}
}

func TestService_PlaceBetMissingEvent(t *testing.T) {
	repo := newFakeRepository(nil)
	svc := newTestService(t, repo, &fakeOutbox{}, nil)

	_, err := svc.PlaceBet(context.Background(), PlaceBetInput{
		BettorID:    "bettor-x",
		EventID:     42,
		OptionIdx:   0,
		AmountCents: 100,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidEvent) {
		t.Fatalf("expected invalid event, got %v", err)
	}
	if coded := pkgerrors.As(err); coded.Message() != "Invalid event or bet closed" {
		t.Fatalf("unexpected message %q", coded.Message())
	}
}

func TestService_PlaceBetClosedEvent(t *testing.T) {
	event := openEvent(1)
	event.Status = enums.EventStatusClosed
	repo := newFakeRepository(event)
	svc := newTestService(t, repo, &fakeOutbox{}, nil)

	_, err := svc.PlaceBet(context.Background(), PlaceBetInput{
		BettorID:    "bettor-x",
		EventID:     1,
		OptionIdx:   0,
		AmountCents: 100,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidEvent) {
		t.Fatalf("expected invalid event, got %v", err)
	}
	if len(repo.bets) != 0 {
		t.Fatalf("no bet may be recorded on a closed event")
	}
}

func TestService_PlaceBetInvalidOption(t *testing.T) {
	repo := newFakeRepository(openEvent(1))
	svc := newTestService(t, repo, &fakeOutbox{}, nil)

	for _, idx := range []int{-1, 2, 99} {
		_, err := svc.PlaceBet(context.Background(), PlaceBetInput{
			BettorID:    "bettor-x",
			EventID:     1,
			OptionIdx:   idx,
			AmountCents: 100,
		})
		if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidOption) {
			t.Fatalf("option %d: expected invalid option, got %v", idx, err)
		}
	}
	if len(repo.bets) != 0 || repo.event.TotalPoolCents != 0 {
		t.Fatalf("rejected bets must leave no trace")
	}
}

func TestService_PlaceBetLimitExceeded(t *testing.T) {
	repo := newFakeRepository(openEvent(1))
	svc := newTestService(t, repo, &fakeOutbox{}, nil)
	ctx := context.Background()

	// 500M then 600M crosses the 1B ceiling on the second placement.
	if _, err := svc.PlaceBet(ctx, PlaceBetInput{
		BettorID:    "whale",
		EventID:     1,
		OptionIdx:   0,
		AmountCents: 500_000_000,
	}); err != nil {
		t.Fatalf("first bet should pass: %v", err)
	}

	_, err := svc.PlaceBet(ctx, PlaceBetInput{
		BettorID:    "whale",
		EventID:     1,
		OptionIdx:   1,
		AmountCents: 600_000_000,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeLimitExceeded) {
		t.Fatalf("expected limit exceeded, got %v", err)
	}
	if coded := pkgerrors.As(err); coded.Message() != "Exceeds responsible gambling limit" {
		t.Fatalf("unexpected message %q", coded.Message())
	}

	if len(repo.bets) != 1 {
		t.Fatalf("rejected bet must not be recorded, have %d", len(repo.bets))
	}
	if repo.stakes["whale"] != 500_000_000 {
		t.Fatalf("stake aggregate must not grow on rejection: %d", repo.stakes["whale"])
	}
}

func TestService_PlaceBetExactLimitAllowed(t *testing.T) {
	repo := newFakeRepository(openEvent(1))
	svc := newTestService(t, repo, &fakeOutbox{}, nil)

	_, err := svc.PlaceBet(context.Background(), PlaceBetInput{
		BettorID:    "whale",
		EventID:     1,
		OptionIdx:   0,
		AmountCents: testLimit,
	})
	if err != nil {
		t.Fatalf("bet at exactly the cap should pass: %v", err)
	}
}

func TestService_PlaceBetValidation(t *testing.T) {
	repo := newFakeRepository(openEvent(1))
	svc := newTestService(t, repo, &fakeOutbox{}, nil)
	ctx := context.Background()

	if _, err := svc.PlaceBet(ctx, PlaceBetInput{BettorID: " ", EventID: 1, OptionIdx: 0, AmountCents: 100}); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for blank bettor, got %v", err)
	}
	if _, err := svc.PlaceBet(ctx, PlaceBetInput{BettorID: "x", EventID: 1, OptionIdx: 0, AmountCents: 0}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation for zero amount, got %v", err)
	}
	if _, err := svc.PlaceBet(ctx, PlaceBetInput{BettorID: "x", EventID: 0, OptionIdx: 0, AmountCents: 100}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation for zero event id, got %v", err)
	}
}

func TestService_PlaceBetEventClosedMidFlight(t *testing.T) {
	repo := newFakeRepository(openEvent(1))
	repo.eventPoolClosed = true
	svc := newTestService(t, repo, &fakeOutbox{}, nil)

	_, err := svc.PlaceBet(context.Background(), PlaceBetInput{
		BettorID:    "bettor-x",
		EventID:     1,
		OptionIdx:   0,
		AmountCents: 100,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidEvent) {
		t.Fatalf("expected invalid event when pool guard misses, got %v", err)
	}
}
