package obligations

import (
	"time"

	id "taxgate/pkg/domain"
)

// Status of an obligation period.
type Status string

const (
	// StatusOpen marks a period awaiting a return.
	StatusOpen Status = "O"
	// StatusFulfilled marks a period for which a return has been received.
	StatusFulfilled Status = "F"
)

// Obligation is a quarterly VAT filing window for a registration.
type Obligation struct {
	PeriodKey id.PeriodKey `json:"periodKey"`
	Start     time.Time    `json:"start"`
	End       time.Time    `json:"end"`
	Due       time.Time    `json:"due"`
	Status    Status       `json:"status"`
}
