package http

import (
	"net/http"

	"grants-approval-engine/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

type RequestHandler struct{ uc *workflow.Usecase }

func NewRequestHandler(uc *workflow.Usecase) *RequestHandler { return &RequestHandler{uc: uc} }

type createRequestReq struct {
	EntityType  string   `json:"entity_type"  validate:"required"`
	EntityID    string   `json:"entity_id"    validate:"required"`
	Amount      *float64 `json:"amount"       validate:"omitempty,gte=0"`
	SubmittedBy string   `json:"submitted_by"`
}

type decideReq struct {
	StepOrder    int    `json:"step_order"    validate:"required,gte=1"`
	Decision     string `json:"decision"      validate:"required,oneof=approve reject"`
	ApproverID   string `json:"approver_id"   validate:"required"`
	ApproverName string `json:"approver_name"`
	Comments     string `json:"comments"`
}

type cancelReq struct {
	ActorID string `json:"actor_id" validate:"required"`
}

type requestIDParam struct {
	RequestID string `validate:"required,hex32"`
}

// requestIDOf pulls and validates the :request_id path param. Public ids
// are always 32-char lowercase hex, so anything else is a malformed URL,
// not a missing resource.
func requestIDOf(c echo.Context) (string, error) {
	p := requestIDParam{RequestID: c.Param("request_id")}
	if err := c.Validate(&p); err != nil {
		return "", err
	}
	return p.RequestID, nil
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	var req createRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	snap, err := h.uc.Create(c.Request().Context(), workflow.CreateInput{
		EntityType:  req.EntityType,
		EntityID:    req.EntityID,
		Amount:      req.Amount,
		SubmittedBy: req.SubmittedBy,
	})
	if err != nil {
		status, body := errorJSON(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusCreated, snap)
}

func (h *RequestHandler) Decide(c echo.Context) error {
	requestID, err := requestIDOf(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request_id", Details: ToFieldErrors(err)})
	}
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	snap, err := h.uc.Decide(c.Request().Context(), workflow.DecideInput{
		RequestID:    requestID,
		StepOrder:    req.StepOrder,
		Decision:     workflow.Decision(req.Decision),
		ApproverID:   req.ApproverID,
		ApproverName: req.ApproverName,
		Comments:     req.Comments,
	})
	if err != nil {
		status, body := errorJSON(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *RequestHandler) Cancel(c echo.Context) error {
	requestID, err := requestIDOf(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request_id", Details: ToFieldErrors(err)})
	}
	var req cancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	snap, err := h.uc.Cancel(c.Request().Context(), workflow.CancelInput{
		RequestID: requestID,
		ActorID:   req.ActorID,
	})
	if err != nil {
		status, body := errorJSON(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *RequestHandler) GetRequest(c echo.Context) error {
	requestID, err := requestIDOf(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request_id", Details: ToFieldErrors(err)})
	}
	snap, err := h.uc.Get(c.Request().Context(), requestID)
	if err != nil {
		status, body := errorJSON(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *RequestHandler) History(c echo.Context) error {
	requestID, err := requestIDOf(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request_id", Details: ToFieldErrors(err)})
	}
	acts, err := h.uc.History(c.Request().Context(), requestID)
	if err != nil {
		status, body := errorJSON(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, acts)
}
