package http

import (
	"net/http"

	"grants-approval-engine/internal/usecase/chaindef"

	"github.com/labstack/echo/v4"
)

type ChainHandler struct{ uc *chaindef.Usecase }

func NewChainHandler(uc *chaindef.Usecase) *ChainHandler { return &ChainHandler{uc: uc} }

type chainStepReq struct {
	StepOrder    int    `json:"step_order"    validate:"required,gte=1"`
	StepName     string `json:"step_name"     validate:"required"`
	ApproverRole string `json:"approver_role" validate:"required,role"`
}

type createChainReq struct {
	EntityType string         `json:"entity_type" validate:"required"`
	MinAmount  *float64       `json:"min_amount"  validate:"omitempty,gte=0"`
	MaxAmount  *float64       `json:"max_amount"  validate:"omitempty,gte=0"`
	Priority   int            `json:"priority"    validate:"gte=0"`
	Steps      []chainStepReq `json:"steps"       validate:"required,min=1,dive"`
}

func (h *ChainHandler) CreateChain(c echo.Context) error {
	var req createChainReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := chaindef.CreateChainInput{
		EntityType: req.EntityType,
		MinAmount:  req.MinAmount,
		MaxAmount:  req.MaxAmount,
		Priority:   req.Priority,
	}
	for _, s := range req.Steps {
		in.Steps = append(in.Steps, chaindef.StepInput{
			StepOrder:    s.StepOrder,
			StepName:     s.StepName,
			ApproverRole: s.ApproverRole,
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		status, body := errorJSON(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ChainHandler) ListChains(c echo.Context) error {
	entityType := c.QueryParam("entity_type")
	if entityType == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing entity_type query param"})
	}
	out, err := h.uc.List(c.Request().Context(), entityType)
	if err != nil {
		status, body := errorJSON(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, out)
}
