package auth

import "errors"

// Reason enumerates the authorization failure kinds the provider can answer
// with. The set is closed: anything else coming back from the provider is an
// ordinary error and is never converted into a 401.
type Reason string

const (
	ReasonInsufficientConfidenceLevel Reason = "InsufficientConfidenceLevel"
	ReasonInsufficientEnrolments      Reason = "InsufficientEnrolments"
	ReasonUnsupportedAffinityGroup    Reason = "UnsupportedAffinityGroup"
	ReasonUnsupportedCredentialRole   Reason = "UnsupportedCredentialRole"
	ReasonUnsupportedAuthProvider     Reason = "UnsupportedAuthProvider"
	ReasonIncorrectCredentialStrength Reason = "IncorrectCredentialStrength"
	ReasonInternalError               Reason = "InternalError"
	ReasonBearerTokenExpired          Reason = "BearerTokenExpired"
	ReasonMissingBearerToken          Reason = "MissingBearerToken"
	ReasonInvalidBearerToken          Reason = "InvalidBearerToken"
	ReasonSessionRecordNotFound       Reason = "SessionRecordNotFound"
)

var recognizedReasons = map[Reason]struct{}{
	ReasonInsufficientConfidenceLevel: {},
	ReasonInsufficientEnrolments:      {},
	ReasonUnsupportedAffinityGroup:    {},
	ReasonUnsupportedCredentialRole:   {},
	ReasonUnsupportedAuthProvider:     {},
	ReasonIncorrectCredentialStrength: {},
	ReasonInternalError:               {},
	ReasonBearerTokenExpired:          {},
	ReasonMissingBearerToken:          {},
	ReasonInvalidBearerToken:          {},
	ReasonSessionRecordNotFound:       {},
}

// Error is a typed authorization failure. The gate answers 401 to every
// *Error and to nothing else.
type Error struct {
	Reason Reason
}

func (e *Error) Error() string {
	return "authorization failed: " + string(e.Reason)
}

// Denied builds a typed authorization failure.
func Denied(reason Reason) *Error {
	return &Error{Reason: reason}
}

// ParseReason maps a provider failure detail onto the closed reason set.
func ParseReason(detail string) (Reason, bool) {
	r := Reason(detail)
	_, ok := recognizedReasons[r]
	return r, ok
}

// IsAuthorizationError reports whether err is (or wraps) a typed
// authorization failure.
func IsAuthorizationError(err error) bool {
	var ae *Error
	return errors.As(err, &ae)
}
