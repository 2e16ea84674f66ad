// Package local provides an in-process authorizer for development and tests.
// It verifies HS256 bearer tokens whose claims describe the session the real
// government gateway would hold, then evaluates the same policy conjunction
// and fails with the same closed error set as the remote provider.
package local

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taxgate/internal/auth"
	id "taxgate/pkg/domain"
)

// Claims carries the session attributes the policy is evaluated against.
type Claims struct {
	InternalID         string           `json:"internalId,omitempty"`
	AuthProvider       string           `json:"authProvider"`
	AffinityGroup      string           `json:"affinityGroup"`
	ConfidenceLevel    int              `json:"confidenceLevel"`
	CredentialStrength string           `json:"credentialStrength"`
	Enrolments         []auth.Enrolment `json:"enrolments"`
	jwt.RegisteredClaims
}

// Authorizer evaluates the policy against claims carried in the bearer token
// itself. Never use outside development: the token is the session store.
type Authorizer struct {
	signingKey []byte
}

// New builds a local authorizer with the given HS256 signing key.
func New(signingKey string) *Authorizer {
	return &Authorizer{signingKey: []byte(signingKey)}
}

// Authorise implements auth.Authorizer.
func (a *Authorizer) Authorise(ctx context.Context, policy auth.Policy, retrieval auth.Retrieval) (*auth.Outcome, error) {
	claims, err := a.parseToken(auth.BearerTokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	if err := evaluate(policy, claims); err != nil {
		return nil, err
	}

	outcome := &auth.Outcome{Enrolments: auth.Enrolments(claims.Enrolments)}
	if claims.InternalID != "" {
		internalID := id.InternalID(claims.InternalID)
		outcome.InternalID = &internalID
	}
	return outcome, nil
}

func (a *Authorizer) parseToken(header string) (*Claims, error) {
	if header == "" {
		return nil, auth.Denied(auth.ReasonMissingBearerToken)
	}
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, auth.Denied(auth.ReasonInvalidBearerToken)
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return a.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, auth.Denied(auth.ReasonBearerTokenExpired)
		}
		return nil, auth.Denied(auth.ReasonInvalidBearerToken)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, auth.Denied(auth.ReasonInvalidBearerToken)
	}
	return claims, nil
}

// evaluate applies the policy conjunction in the provider's order.
func evaluate(policy auth.Policy, claims *Claims) error {
	if claims.AuthProvider != policy.AuthProvider {
		return auth.Denied(auth.ReasonUnsupportedAuthProvider)
	}
	if _, ok := auth.Enrolments(claims.Enrolments).Get(policy.EnrolmentKey); !ok {
		return auth.Denied(auth.ReasonInsufficientEnrolments)
	}
	if claims.CredentialStrength != policy.CredentialStrength {
		return auth.Denied(auth.ReasonIncorrectCredentialStrength)
	}
	if claims.AffinityGroup != policy.AffinityGroup {
		return auth.Denied(auth.ReasonUnsupportedAffinityGroup)
	}
	if claims.ConfidenceLevel < policy.MinimumConfidence {
		return auth.Denied(auth.ReasonInsufficientConfidenceLevel)
	}
	return nil
}

// IssueToken mints a session token for development tooling and tests.
func (a *Authorizer) IssueToken(claims Claims, expiresIn time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.signingKey)
}
