package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	id "taxgate/pkg/domain"
)

const authorisePath = "/auth/authorise"

// Client talks to the external government gateway authorizer over HTTP. One
// request per Authorise call; timeouts are owned by the request context.
type Client struct {
	base       string
	httpClient *http.Client
	tracer     trace.Tracer
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds an authorizer client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		base:       strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		tracer:     otel.Tracer("taxgate/internal/auth"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// authoriseRequest is the provider wire format: the policy conjunction plus
// the values to retrieve on success.
type authoriseRequest struct {
	Authorise []map[string]any `json:"authorise"`
	Retrieve  []string         `json:"retrieve"`
}

type authoriseResponse struct {
	InternalID    *string     `json:"internalId"`
	AllEnrolments []Enrolment `json:"allEnrolments"`
}

// Authorise performs the authorization check. Typed *Error for every
// recognized refusal; any other failure comes back unclassified.
func (c *Client) Authorise(ctx context.Context, policy Policy, retrieval Retrieval) (*Outcome, error) {
	ctx, span := c.tracer.Start(ctx, "auth.Authorise",
		trace.WithAttributes(attribute.String("auth.enrolment", policy.EnrolmentKey)))
	defer span.End()

	outcome, err := c.authorise(ctx, policy, retrieval)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return outcome, nil
}

func (c *Client) authorise(ctx context.Context, policy Policy, retrieval Retrieval) (*Outcome, error) {
	body, err := json.Marshal(authoriseRequest{
		Authorise: predicates(policy),
		Retrieve:  []string(retrieval),
	})
	if err != nil {
		return nil, fmt.Errorf("encode authorise request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+authorisePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build authorise request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := BearerTokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call authorizer: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var ar authoriseResponse
		if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
			return nil, fmt.Errorf("decode authorise response: %w", err)
		}
		outcome := &Outcome{Enrolments: Enrolments(ar.AllEnrolments)}
		if ar.InternalID != nil {
			internalID := id.InternalID(*ar.InternalID)
			outcome.InternalID = &internalID
		}
		return outcome, nil
	case http.StatusUnauthorized:
		detail := failureDetail(resp.Header.Get("WWW-Authenticate"))
		if reason, ok := ParseReason(detail); ok {
			return nil, Denied(reason)
		}
		return nil, fmt.Errorf("authorizer refused with unrecognized detail %q", detail)
	default:
		return nil, fmt.Errorf("authorizer returned status %d", resp.StatusCode)
	}
}

// predicates renders the policy conjunction in provider order.
func predicates(policy Policy) []map[string]any {
	return []map[string]any{
		{"authProviders": []string{policy.AuthProvider}},
		{"enrolment": policy.EnrolmentKey},
		{"credentialStrength": policy.CredentialStrength},
		{"affinityGroup": policy.AffinityGroup},
		{"confidenceLevel": policy.MinimumConfidence},
	}
}

// failureDetail extracts the refusal reason from a header of the form
//
//	WWW-Authenticate: MDTP detail="InsufficientEnrolments"
func failureDetail(header string) string {
	_, rest, ok := strings.Cut(header, `detail="`)
	if !ok {
		return ""
	}
	detail, _, ok := strings.Cut(rest, `"`)
	if !ok {
		return ""
	}
	return detail
}
