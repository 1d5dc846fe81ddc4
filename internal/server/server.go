package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/service"
)

// Config for the HTTP API handler.
type Config struct {
	Estimates service.EstimateService
	Rollups   service.RollupService
	Buffers   service.BufferService
	Hierarchy service.HierarchyService
	BasePath  string
	Logger    *zap.Logger
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"not_found"`
	Message string         `json:"message" example:"issue 42: not found"`
	Details map[string]any `json:"details,omitempty" jsonschema:"type=object,additionalProperties=true"`
}

// apiError is the {"error": {...}} envelope every failure is written as.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns an HTTP handler exposing the estimation API.
func New(cfg Config) (http.Handler, error) {
	if cfg.Estimates == nil || cfg.Rollups == nil || cfg.Buffers == nil || cfg.Hierarchy == nil {
		return nil, errors.New("server: all services are required")
	}
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v1"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg, nil)
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}
		var details map[string]any
		if len(errs) > 0 {
			details = map[string]any{"errors": errs}
		}
		return newAPIError(status, "", msg, details)
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(logger))

	hcfg := huma.DefaultConfig("Effort Estimation API", "1.0.0")
	hcfg.OpenAPIPath = basePath + "/openapi"
	hcfg.DocsPath = ""
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerHealth(group)
	registerEstimates(group, cfg.Estimates)
	registerRollups(group, cfg.Rollups)
	registerBuffer(group, cfg.Buffers)
	registerHierarchy(group, cfg.Hierarchy)

	return router, nil
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}
	return &apiError{
		status: status,
		Body: apiErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// handleError maps engine error kinds onto HTTP statuses.
func handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	var se huma.StatusError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newAPIError(http.StatusServiceUnavailable, "cancelled", err.Error(), nil)
	}

	kind := contract.KindOf(err)
	msg := err.Error()
	switch kind {
	case contract.ErrInvalidInput, contract.ErrInsufficientContext:
		return newAPIError(http.StatusBadRequest, string(kind), msg, nil)
	case contract.ErrNotFound:
		return newAPIError(http.StatusNotFound, string(kind), msg, nil)
	case contract.ErrDecompositionFailed, contract.ErrEstimationFailed:
		return newAPIError(http.StatusBadGateway, string(kind), msg, nil)
	case contract.ErrPersistenceFailed:
		return newAPIError(http.StatusConflict, string(kind), msg, nil)
	case contract.ErrProviderUnavailable:
		return newAPIError(http.StatusServiceUnavailable, string(kind), msg, nil)
	default:
		return newAPIError(http.StatusInternalServerError, "internal_error", "internal error", map[string]any{"error": msg})
	}
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadGateway:
		return "bad_gateway"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

// parseKind accepts the route spellings "issues" and "action-items".
func parseKind(s string) (domain.ItemKind, error) {
	kind, err := domain.ParseItemKind(s)
	if err != nil {
		return "", newAPIError(http.StatusBadRequest, string(contract.ErrInvalidInput), err.Error(),
			map[string]any{"kind": s, "allowed": domain.ItemKinds})
	}
	return kind, nil
}
