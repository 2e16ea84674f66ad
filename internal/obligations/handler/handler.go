package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"taxgate/internal/auth"
	"taxgate/internal/obligations"
	"taxgate/internal/platform/metrics"
	"taxgate/internal/platform/middleware"
	"taxgate/internal/transport/http/shared"
	id "taxgate/pkg/domain"
	dErrors "taxgate/pkg/domain-errors"
)

// Service defines the interface for obligation lookups.
type Service interface {
	Obligations(ctx context.Context, callerVRN, vrn id.VRN, year int) ([]obligations.Obligation, error)
}

// Handler handles the VAT obligations endpoint.
type Handler struct {
	logger  *slog.Logger
	service Service
	metrics *metrics.Metrics
	gate    *auth.Gate
}

// New creates a new obligations Handler.
func New(service Service, gate *auth.Gate, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		metrics: m,
		gate:    gate,
	}
}

// Register registers the obligations routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Recovery(h.logger))
		gr.Use(middleware.RequestID)
		gr.Use(middleware.Logger(h.logger))
		gr.Use(middleware.Timeout(30 * time.Second))
		gr.Use(middleware.ContentTypeJSON)
		gr.Use(middleware.LatencyMiddleware(h.metrics))
		gr.Use(h.gate.Require)
		gr.Get("/organisations/vat/{vrn}/obligations", h.handleList)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "identity missing from context despite authorization gate",
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	vrn, err := id.ParseVRN(chi.URLParam(r, "vrn"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var year int
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil || year < 2000 || year > 9999 {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "year must be a four digit year"))
			return
		}
	}

	obs, err := h.service.Obligations(ctx, identity.VRN, vrn, year)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to derive obligations",
				"request_id", middleware.GetRequestID(ctx),
				"vrn", vrn.String(),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, struct {
		Obligations []obligations.Obligation `json:"obligations"`
	}{Obligations: obs})
}
