package auth

import (
	"context"
	"errors"
	"net/http"

	"taxgate/internal/platform/metrics"
	id "taxgate/pkg/domain"
)

//go:generate mockgen -source=models.go -destination=mocks/mocks.go -package=mocks Authorizer

// ErrorHandler receives failures the gate does not recognize as authorization
// failures. The gate hands the error over untouched: no status mapping, no
// logging, no retry.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Gate wraps business handlers with the service authorization check. One
// authorizer call per request; the downstream handler runs at most once, and
// only after both the authorization and enrolment checks pass.
type Gate struct {
	authorizer Authorizer
	policy     Policy
	metrics    *metrics.Metrics
	onError    ErrorHandler
}

// GateOption customizes a Gate.
type GateOption func(*Gate)

// WithErrorHandler replaces the handler for unrecognized failures.
func WithErrorHandler(h ErrorHandler) GateOption {
	return func(g *Gate) { g.onError = h }
}

// NewGate builds the gate. The policy is fixed for the life of the process.
func NewGate(authorizer Authorizer, policy Policy, m *metrics.Metrics, opts ...GateOption) *Gate {
	g := &Gate{
		authorizer: authorizer,
		policy:     policy,
		metrics:    m,
		onError: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Require is the middleware form of the gate for chi routers.
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithBearerToken(r.Context(), r.Header.Get("Authorization"))

		outcome, err := g.authorizer.Authorise(ctx, g.policy, DefaultRetrieval)
		if err != nil {
			var ae *Error
			if errors.As(err, &ae) {
				g.unauthorized(w)
				return
			}
			g.record("error")
			g.onError(w, r, err)
			return
		}

		identity, ok := g.establishIdentity(outcome)
		if !ok {
			g.unauthorized(w)
			return
		}

		g.record("allowed")
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ContextKeyIdentity, identity)))
	})
}

// establishIdentity applies the two post-authorization checks: the internal
// identifier must be present, and the required enrolment must carry the
// required identifier.
func (g *Gate) establishIdentity(outcome *Outcome) (Identity, bool) {
	if outcome == nil || outcome.InternalID == nil {
		return Identity{}, false
	}
	enrolment, ok := outcome.Enrolments.Get(g.policy.EnrolmentKey)
	if !ok {
		return Identity{}, false
	}
	value, ok := enrolment.Identifier(g.policy.IdentifierKey)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		InternalID: *outcome.InternalID,
		VRN:        id.VRN(value),
	}, true
}

// unauthorized answers 401 with an empty body. Identity-absent and
// enrolment-absent are deliberately indistinguishable to the caller.
func (g *Gate) unauthorized(w http.ResponseWriter) {
	g.record("unauthorized")
	w.WriteHeader(http.StatusUnauthorized)
}

func (g *Gate) record(result string) {
	if g.metrics != nil {
		g.metrics.RecordAuthDecision(result)
	}
}
