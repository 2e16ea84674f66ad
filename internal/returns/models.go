package returns

import (
	"errors"
	"time"

	id "taxgate/pkg/domain"
	dErrors "taxgate/pkg/domain-errors"
)

// Sentinel errors shared by every store implementation.
var (
	// ErrNotFound means no return exists for the requested period.
	ErrNotFound = errors.New("return not found")
	// ErrDuplicate means a return was already submitted for the period.
	ErrDuplicate = errors.New("return already submitted for period")
)

// VATReturn is the nine-box VAT return for one reporting period.
type VATReturn struct {
	VRN                    id.VRN       `json:"-"`
	PeriodKey              id.PeriodKey `json:"periodKey"`
	VATDueSales            float64      `json:"vatDueSales"`
	VATDueAcquisitions     float64      `json:"vatDueAcquisitions"`
	TotalVATDue            float64      `json:"totalVatDue"`
	VATReclaimedCurrPd     float64      `json:"vatReclaimedCurrPeriod"`
	NetVATDue              float64      `json:"netVatDue"`
	TotalValueSalesExVAT   float64      `json:"totalValueSalesExVAT"`
	TotalValuePurchExVAT   float64      `json:"totalValuePurchasesExVAT"`
	TotalValueGoodsExVAT   float64      `json:"totalValueGoodsSuppliedExVAT"`
	TotalAcquisitionsExVAT float64      `json:"totalAcquisitionsExVAT"`
	Finalised              bool         `json:"finalised"`
	ReceivedAt             time.Time    `json:"receivedAt,omitzero"`
}

// Validate enforces the declaration and the box arithmetic. Monetary values
// are pounds and pence, so comparisons allow for float rounding.
func (r VATReturn) Validate() error {
	if !r.Finalised {
		return dErrors.New(dErrors.CodeBadRequest, "return must carry a finalised declaration")
	}
	if _, err := id.ParsePeriodKey(r.PeriodKey.String()); err != nil {
		return err
	}
	if !moneyEqual(r.TotalVATDue, r.VATDueSales+r.VATDueAcquisitions) {
		return dErrors.New(dErrors.CodeBadRequest, "totalVatDue must equal vatDueSales plus vatDueAcquisitions")
	}
	net := r.TotalVATDue - r.VATReclaimedCurrPd
	if net < 0 {
		net = -net
	}
	if !moneyEqual(r.NetVATDue, net) {
		return dErrors.New(dErrors.CodeBadRequest, "netVatDue must equal the absolute difference of totalVatDue and vatReclaimedCurrPeriod")
	}
	return nil
}

func moneyEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.005
}
