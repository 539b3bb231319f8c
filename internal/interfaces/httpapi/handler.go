package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fixture-reconciler/internal/platform/logging"
	"github.com/riskibarqy/fixture-reconciler/internal/usecase"
)

const maxRequestBodyBytes = 8 << 20

type Handler struct {
	reconcileService *usecase.ReconcileService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(reconcileService *usecase.ReconcileService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		reconcileService: reconcileService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Reconcile")
	defer span.End()

	var req reconcileRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %w", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.reconcileService.ReconcileBatch(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile batch failed",
			"competition", req.CompetitionCode,
			"fixtures", len(req.Fixtures),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reconcileResultToDTO(result))
}

func (h *Handler) ReconcileCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReconcileCompetition")
	defer span.End()

	competitionCode := strings.TrimSpace(r.PathValue("code"))
	season := strings.TrimSpace(r.PathValue("season"))
	maxWorkers, err := parseMaxWorkers(r.URL.Query().Get("max_workers"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.reconcileService.ReconcileCompetition(ctx, competitionCode, season, maxWorkers)
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile competition failed",
			"competition", competitionCode,
			"season", season,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reconcileResultToDTO(result))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseMaxWorkers(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: max_workers must be an integer", usecase.ErrInvalidInput)
	}
	return v, nil
}
