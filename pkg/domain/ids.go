// Package domain holds typed identifiers used across the service. Parsing
// functions enforce validity at trust boundaries so the rest of the code can
// rely on well-formed values.
package domain

import (
	dErrors "taxgate/pkg/domain-errors"
)

// VRN is a VAT registration number: exactly nine decimal digits.
type VRN string

// ParseVRN validates and returns a VRN.
func ParseVRN(s string) (VRN, error) {
	if len(s) != 9 {
		return "", dErrors.New(dErrors.CodeBadRequest, "vrn must be nine digits")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return "", dErrors.New(dErrors.CodeBadRequest, "vrn must be nine digits")
		}
	}
	return VRN(s), nil
}

func (v VRN) String() string { return string(v) }

// PeriodKey identifies a reporting period: four characters, e.g. "24A1".
type PeriodKey string

// ParsePeriodKey validates and returns a PeriodKey.
func ParsePeriodKey(s string) (PeriodKey, error) {
	if len(s) != 4 {
		return "", dErrors.New(dErrors.CodeBadRequest, "period key must be four characters")
	}
	return PeriodKey(s), nil
}

func (p PeriodKey) String() string { return string(p) }

// InternalID is the opaque identity token the authorizer assigns to an
// authenticated credential. It is never parsed, only carried.
type InternalID string

func (i InternalID) String() string { return string(i) }
