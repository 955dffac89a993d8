package payouts

// ClaimInput identifies whose winnings to quote on which event.
type ClaimInput struct {
	Claimant string
	EventID  int64
}

// PayoutQuote is the pari-mutuel share owed to the claimant. Quoting is a
// pure computation: nothing marks the claim as paid, so the same claim
// quotes the same amount every time.
type PayoutQuote struct {
	EventID            int64 `json:"event_id"`
	ResultOption       int   `json:"result_option"`
	ClaimantStakeCents int64 `json:"claimant_stake_cents"`
	WinningPoolCents   int64 `json:"winning_pool_cents"`
	TotalPoolCents     int64 `json:"total_pool_cents"`
	PayoutCents        int64 `json:"payout_cents"`
}
