package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taxgate/internal/auth"
	"taxgate/internal/platform/metrics"
	"taxgate/internal/platform/middleware"
	"taxgate/internal/returns"
	"taxgate/internal/transport/http/shared"
	id "taxgate/pkg/domain"
	dErrors "taxgate/pkg/domain-errors"
)

// Service defines the interface for VAT return operations.
type Service interface {
	Submit(ctx context.Context, callerVRN id.VRN, vr *returns.VATReturn) (*returns.Receipt, error)
	Get(ctx context.Context, callerVRN, vrn id.VRN, periodKey id.PeriodKey) (*returns.VATReturn, error)
}

// Handler handles the VAT returns endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	metrics *metrics.Metrics
	gate    *auth.Gate
}

// New creates a new returns Handler.
func New(service Service, gate *auth.Gate, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		metrics: m,
		gate:    gate,
	}
}

// Register registers the returns routes with the chi router. Every route sits
// behind the authorization gate.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Recovery(h.logger))
		gr.Use(middleware.RequestID)
		gr.Use(middleware.Logger(h.logger))
		gr.Use(middleware.Timeout(30 * time.Second))
		gr.Use(middleware.ContentTypeJSON)
		gr.Use(middleware.LatencyMiddleware(h.metrics))
		gr.Use(h.gate.Require)
		gr.Post("/organisations/vat/{vrn}/returns", h.handleSubmit)
		gr.Get("/organisations/vat/{vrn}/returns/{periodKey}", h.handleView)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	identity, vrn, ok := h.callerAndVRN(w, r)
	if !ok {
		return
	}

	var vr returns.VATReturn
	if err := json.NewDecoder(r.Body).Decode(&vr); err != nil {
		h.logger.WarnContext(ctx, "invalid return submission body",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	vr.VRN = vrn

	receipt, err := h.service.Submit(ctx, identity.VRN, &vr)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to submit return",
				"request_id", requestID,
				"vrn", vrn.String(),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, vrn, ok := h.callerAndVRN(w, r)
	if !ok {
		return
	}

	periodKey, err := id.ParsePeriodKey(chi.URLParam(r, "periodKey"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	vr, err := h.service.Get(ctx, identity.VRN, vrn, periodKey)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, vr)
}

// callerAndVRN resolves the authenticated identity and the URL registration.
// A missing identity means the gate was bypassed, which is a wiring bug.
func (h *Handler) callerAndVRN(w http.ResponseWriter, r *http.Request) (auth.Identity, id.VRN, bool) {
	ctx := r.Context()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "identity missing from context despite authorization gate",
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return auth.Identity{}, "", false
	}

	vrn, err := id.ParseVRN(chi.URLParam(r, "vrn"))
	if err != nil {
		shared.WriteError(w, err)
		return auth.Identity{}, "", false
	}

	return identity, vrn, true
}
