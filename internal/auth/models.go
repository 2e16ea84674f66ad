package auth

import (
	"context"

	"taxgate/internal/platform/config"
	id "taxgate/pkg/domain"
)

// ProviderGovernmentGateway is the only credential provider this service
// accepts.
const ProviderGovernmentGateway = "GovernmentGateway"

// Identifier is one key/value pair attached to an enrolment, e.g. VRN=123456789.
type Identifier struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Enrolment is a caller's registration with a government service, keyed by
// service identifier.
type Enrolment struct {
	Key         string       `json:"key"`
	Identifiers []Identifier `json:"identifiers"`
	State       string       `json:"state"`
}

// Identifier returns the value of the identifier with the given key.
func (e Enrolment) Identifier(key string) (string, bool) {
	for _, i := range e.Identifiers {
		if i.Key == key {
			return i.Value, true
		}
	}
	return "", false
}

// Enrolments is the set of enrolments the authorizer returned for a session,
// unique by key.
type Enrolments []Enrolment

// Get returns the enrolment with the given service key.
func (es Enrolments) Get(key string) (Enrolment, bool) {
	for _, e := range es {
		if e.Key == key {
			return e, true
		}
	}
	return Enrolment{}, false
}

// Policy is the fixed conjunction of predicates every request is authorized
// against. Built once from configuration at startup and shared read-only
// across requests.
type Policy struct {
	AuthProvider       string
	EnrolmentKey       string
	IdentifierKey      string
	MinimumConfidence  int
	CredentialStrength string
	AffinityGroup      string
}

// PolicyFromConfig builds the service policy. Call once in main.
func PolicyFromConfig(cfg config.AuthConfig) Policy {
	return Policy{
		AuthProvider:       ProviderGovernmentGateway,
		EnrolmentKey:       cfg.EnrolmentKey,
		IdentifierKey:      cfg.IdentifierKey,
		MinimumConfidence:  cfg.MinimumConfidence,
		CredentialStrength: cfg.CredentialStrength,
		AffinityGroup:      cfg.AffinityGroup,
	}
}

// Retrieval names the values requested alongside every authorization check.
type Retrieval []string

// DefaultRetrieval is the fixed pair the gate always asks for.
var DefaultRetrieval = Retrieval{"internalId", "allEnrolments"}

// Outcome is a successful authorizer response. InternalID is nil when the
// provider holds no internal identifier for the credential.
type Outcome struct {
	InternalID *id.InternalID
	Enrolments Enrolments
}

// Authorizer is the external authentication provider capability. Exactly one
// call is made per request; implementations must not retry or cache.
type Authorizer interface {
	Authorise(ctx context.Context, policy Policy, retrieval Retrieval) (*Outcome, error)
}

type contextKeyBearerToken struct{}
type contextKeyIdentity struct{}

var (
	// ContextKeyBearerToken carries the inbound Authorization header value to
	// the authorizer.
	ContextKeyBearerToken = contextKeyBearerToken{}
	// ContextKeyIdentity carries the authenticated identity to handlers.
	ContextKeyIdentity = contextKeyIdentity{}
)

// Identity is what the gate establishes about the caller before invoking the
// downstream handler.
type Identity struct {
	InternalID id.InternalID
	VRN        id.VRN
}

// WithBearerToken stores the raw Authorization header value on the context.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ContextKeyBearerToken, token)
}

// BearerTokenFromContext retrieves the raw Authorization header value.
func BearerTokenFromContext(ctx context.Context) string {
	token, ok := ctx.Value(ContextKeyBearerToken).(string)
	if !ok {
		return ""
	}
	return token
}

// IdentityFromContext retrieves the authenticated identity set by the gate.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(Identity)
	return identity, ok
}
