package payouts

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service defines the payout engine operations.
type Service interface {
	ClaimWinnings(ctx context.Context, input ClaimInput) (*PayoutQuote, error)
}

type service struct {
	repo Repository
}

// NewService builds a payout engine with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payouts repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ClaimWinnings(ctx context.Context, input ClaimInput) (*PayoutQuote, error) {
	if strings.TrimSpace(input.Claimant) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "claimant identity missing")
	}
	if input.EventID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id must be positive")
	}

	event, err := s.repo.FindEvent(ctx, input.EventID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidEvent, "Invalid event or result not reported")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	if !event.IsResolved() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidEvent, "Invalid event or result not reported")
	}

	winner := *event.ResultOption
	claimantStake, err := s.repo.SumBettorStakeOnOption(ctx, event.ID, winner, input.Claimant)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum winning stake")
	}
	if claimantStake == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoWinningBets, "No winning bets")
	}

	winningPool := int64(0)
	if event.HasOption(winner) {
		winningPool = event.Options[winner].PoolCents
	}
	if winningPool <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "winning pool out of sync with bets")
	}

	payout := floorShare(claimantStake, event.TotalPoolCents, winningPool)

	return &PayoutQuote{
		EventID:            event.ID,
		ResultOption:       winner,
		ClaimantStakeCents: claimantStake,
		WinningPoolCents:   winningPool,
		TotalPoolCents:     event.TotalPoolCents,
		PayoutCents:        payout,
	}, nil
}

// floorShare computes floor(stake * totalPool / winningPool) without the
// int64 overflow a direct multiplication of two pool-sized amounts risks.
func floorShare(stakeCents, totalPoolCents, winningPoolCents int64) int64 {
	stake := decimal.NewFromInt(stakeCents)
	total := decimal.NewFromInt(totalPoolCents)
	winning := decimal.NewFromInt(winningPoolCents)
	return stake.Mul(total).Div(winning).Floor().IntPart()
}
