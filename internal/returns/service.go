package returns

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"taxgate/internal/audit"
	"taxgate/internal/platform/metrics"
	id "taxgate/pkg/domain"
	dErrors "taxgate/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher

// Store is the persistence dependency of the service.
type Store interface {
	Save(ctx context.Context, vr *VATReturn) error
	Find(ctx context.Context, vrn id.VRN, periodKey id.PeriodKey) (*VATReturn, error)
}

// AuditPublisher records accepted submissions. Best effort: a full audit
// pipeline must never fail a submission.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ProcessingDate   time.Time `json:"processingDate"`
	FormBundleNumber string    `json:"formBundleNumber"`
}

// Service validates and persists VAT returns. Handlers stay thin; the VRN
// affinity check lives here so every transport enforces it.
type Service struct {
	store   Store
	audit   AuditPublisher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(store Store, audit AuditPublisher, m *metrics.Metrics) *Service {
	return &Service{store: store, audit: audit, metrics: m, now: time.Now}
}

// Submit validates and persists a return submitted by callerVRN.
func (s *Service) Submit(ctx context.Context, callerVRN id.VRN, ret *VATReturn) (*Receipt, error) {
	if ret.VRN != callerVRN {
		return nil, dErrors.New(dErrors.CodeForbidden, "enrolment does not cover the requested registration")
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}

	ret.ReceivedAt = s.now()
	if err := s.store.Save(ctx, ret); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, dErrors.New(dErrors.CodeConflict, "a return was already submitted for this period")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "save return", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementReturnsSubmitted()
	}
	_ = s.audit.Emit(ctx, audit.Event{
		Kind:      audit.KindReturnSubmitted,
		VRN:       ret.VRN.String(),
		PeriodKey: ret.PeriodKey.String(),
	})

	return &Receipt{
		ProcessingDate:   ret.ReceivedAt,
		FormBundleNumber: uuid.NewString(),
	}, nil
}

// Get returns a previously submitted return.
func (s *Service) Get(ctx context.Context, callerVRN, vrn id.VRN, periodKey id.PeriodKey) (*VATReturn, error) {
	if vrn != callerVRN {
		return nil, dErrors.New(dErrors.CodeForbidden, "enrolment does not cover the requested registration")
	}
	ret, err := s.store.Find(ctx, vrn, periodKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no return submitted for this period")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "find return", err)
	}
	return ret, nil
}
