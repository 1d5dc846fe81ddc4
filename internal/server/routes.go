package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/service"
)

var serviceErrors = []int{
	http.StatusBadRequest,
	http.StatusNotFound,
	http.StatusConflict,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
}

type itemPath struct {
	Kind string `path:"kind" doc:"issues or action-items"`
	ID   int64  `path:"id"`
}

// PreviewRequest is the free-text input to an estimate preview.
type PreviewRequest struct {
	Title       string `json:"title" doc:"Work item title, at least 5 characters"`
	Description string `json:"description" doc:"Work item description, at least 20 characters"`
	ItemKind    string `json:"itemKind,omitempty" doc:"issue or action-item"`
}

type estimateResultOutput struct {
	Body *contract.EstimateResult
}

type persistedEstimateOutput struct {
	Body *contract.PersistedEstimate
}

type historyOutput struct {
	Body []contract.EstimateHistoryEntry
}

type rollupOutput struct {
	Body *contract.RollupResult
}

type batchRollupOutput struct {
	Body *contract.BatchRollupResult
}

type dependencyEstimateOutput struct {
	Body *contract.DependencyEstimate
}

type hierarchyOutput struct {
	Body *contract.HierarchyResult
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func registerEstimates(api huma.API, svc service.EstimateService) {
	huma.Register(api, huma.Operation{
		OperationID: "preview-estimate",
		Method:      http.MethodPost,
		Path:        "/estimates/preview",
		Summary:     "Estimate free text without saving",
		Errors:      serviceErrors,
	}, func(ctx context.Context, input *struct {
		Body PreviewRequest
	}) (*estimateResultOutput, error) {
		req := contract.EstimateRequest{Title: input.Body.Title, Description: input.Body.Description}
		if input.Body.ItemKind != "" {
			kind, err := parseKind(input.Body.ItemKind)
			if err != nil {
				return nil, err
			}
			req.ItemKind = kind
		}
		res, err := svc.Preview(ctx, req)
		if err != nil {
			return nil, handleError(err)
		}
		return &estimateResultOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "generate-estimate",
		Method:        http.MethodPost,
		Path:          "/{kind}/{id}/estimates",
		Summary:       "Estimate a stored item and save a new version",
		DefaultStatus: http.StatusCreated,
		Errors:        serviceErrors,
	}, func(ctx context.Context, input *struct {
		Kind      string `path:"kind" doc:"issues or action-items"`
		ID        int64  `path:"id"`
		Source    string `query:"source" doc:"ai_generated, manual_regenerate or manual"`
		CreatedBy string `query:"created_by"`
	}) (*persistedEstimateOutput, error) {
		kind, err := parseKind(input.Kind)
		if err != nil {
			return nil, err
		}
		opts := contract.EstimateOptions{
			Source:    domain.EstimateSource(input.Source),
			CreatedBy: input.CreatedBy,
			UserID:    input.CreatedBy,
		}
		// The write must finish or roll back even if the client goes away.
		out, err := svc.GenerateEstimateFromItem(context.WithoutCancel(ctx), kind, input.ID, opts)
		if err != nil {
			return nil, handleError(err)
		}
		return &persistedEstimateOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-estimate-history",
		Method:      http.MethodGet,
		Path:        "/{kind}/{id}/estimates",
		Summary:     "List estimate versions, oldest first",
		Errors:      serviceErrors,
	}, func(ctx context.Context, input *itemPath) (*historyOutput, error) {
		kind, err := parseKind(input.Kind)
		if err != nil {
			return nil, err
		}
		entries, err := svc.ListEstimateHistory(ctx, kind, input.ID)
		if err != nil {
			return nil, handleError(err)
		}
		return &historyOutput{Body: entries}, nil
	})
}

func registerRollups(api huma.API, svc service.RollupService) {
	huma.Register(api, huma.Operation{
		OperationID: "rollup-item",
		Method:      http.MethodPost,
		Path:        "/{kind}/{id}/rollup",
		Summary:     "Sum descendant estimates for one parent",
		Errors:      serviceErrors,
	}, func(ctx context.Context, input *struct {
		Kind         string `path:"kind" doc:"issues or action-items"`
		ID           int64  `path:"id"`
		UpdateParent bool   `query:"update_parent" doc:"Write the total onto the parent"`
	}) (*rollupOutput, error) {
		kind, err := parseKind(input.Kind)
		if err != nil {
			return nil, err
		}
		res, err := svc.CalculateRollupEffort(ctx, kind, input.ID, contract.RollupOptions{UpdateParent: input.UpdateParent})
		if err != nil {
			return nil, handleError(err)
		}
		return &rollupOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "rollup-project",
		Method:      http.MethodPost,
		Path:        "/projects/{project_id}/{kind}/rollup",
		Summary:     "Recompute every parent in a project, deepest first",
		Errors:      serviceErrors,
	}, func(ctx context.Context, input *struct {
		ProjectID int64  `path:"project_id"`
		Kind      string `path:"kind" doc:"issues or action-items"`
	}) (*batchRollupOutput, error) {
		kind, err := parseKind(input.Kind)
		if err != nil {
			return nil, err
		}
		res, err := svc.UpdateAllParentEfforts(ctx, kind, input.ProjectID)
		if err != nil {
			return nil, handleError(err)
		}
		return &batchRollupOutput{Body: res}, nil
	})
}

func registerBuffer(api huma.API, svc service.BufferService) {
	huma.Register(api, huma.Operation{
		OperationID: "dependency-estimate",
		Method:      http.MethodGet,
		Path:        "/{kind}/{id}/dependency-estimate",
		Summary:     "Base effort plus a buffer for open prerequisites",
		Errors:      serviceErrors,
	}, func(ctx context.Context, input *itemPath) (*dependencyEstimateOutput, error) {
		kind, err := parseKind(input.Kind)
		if err != nil {
			return nil, err
		}
		res, err := svc.EstimateWithDependencies(ctx, kind, input.ID)
		if err != nil {
			return nil, handleError(err)
		}
		return &dependencyEstimateOutput{Body: res}, nil
	})
}

func registerHierarchy(api huma.API, svc service.HierarchyService) {
	huma.Register(api, huma.Operation{
		OperationID: "hierarchy",
		Method:      http.MethodGet,
		Path:        "/{kind}/{id}/hierarchy",
		Summary:     "Tree containing the item, from its topmost ancestor",
		Errors:      serviceErrors,
	}, func(ctx context.Context, input *itemPath) (*hierarchyOutput, error) {
		kind, err := parseKind(input.Kind)
		if err != nil {
			return nil, err
		}
		res, err := svc.GetHierarchicalBreakdown(ctx, kind, input.ID)
		if err != nil {
			return nil, handleError(err)
		}
		return &hierarchyOutput{Body: res}, nil
	})
}
