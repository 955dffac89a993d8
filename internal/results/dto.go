package results

// ReportResultInput carries an oracle's resolution report. Sender is the
// opaque caller identity threaded through by the API layer.
type ReportResultInput struct {
	Sender       string
	EventID      int64
	ResultOption int
}

// EventResolvedEvent is emitted when an event's result is recorded.
type EventResolvedEvent struct {
	EventID        int64 `json:"event_id"`
	ResultOption   int   `json:"result_option"`
	TotalPoolCents int64 `json:"total_pool_cents"`
}
