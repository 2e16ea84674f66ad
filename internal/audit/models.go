package audit

import "time"

// Kind labels an audit event.
type Kind string

const (
	KindReturnSubmitted Kind = "return_submitted"
)

// Event is one append-only audit record.
type Event struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	VRN       string    `json:"vrn"`
	PeriodKey string    `json:"periodKey,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
