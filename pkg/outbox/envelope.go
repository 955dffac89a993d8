package outbox

import (
	"encoding/json"
	"time"
)

// ActorRef identifies who produced the event. Identities are opaque
// references supplied by the caller, never minted here.
type ActorRef struct {
	ActorID string `json:"actorId"`
}

// PayloadEnvelope is the stable payload structure stored in outbox_events.
type PayloadEnvelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Actor      *ActorRef       `json:"actor,omitempty"`
	Data       json.RawMessage `json:"data"`
}
