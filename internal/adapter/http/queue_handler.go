package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"grants-approval-engine/internal/usecase/queue"

	"github.com/labstack/echo/v4"
)

var errInvalidThresholds = errors.New("thresholds must be a comma-separated list of non-negative integers")

type QueueHandler struct{ uc *queue.Usecase }

func NewQueueHandler(uc *queue.Usecase) *QueueHandler { return &QueueHandler{uc: uc} }

func (h *QueueHandler) ListQueue(c echo.Context) error {
	role := c.Param("role")
	if role == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing role path param"})
	}
	items, err := h.uc.ListQueue(c.Request().Context(), role)
	if err != nil {
		status, body := errorJSON(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, items)
}

// Summary serves the dashboard counters. Thresholds come from the caller
// (?thresholds=2,5,10) since bucket boundaries are presentation policy.
func (h *QueueHandler) Summary(c echo.Context) error {
	role := c.Param("role")
	if role == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing role path param"})
	}
	thresholds, err := parseThresholds(c.QueryParam("thresholds"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	sum, err := h.uc.Summarize(c.Request().Context(), role, thresholds)
	if err != nil {
		status, body := errorJSON(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, sum)
}

func parseThresholds(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, errInvalidThresholds
		}
		out = append(out, n)
	}
	return out, nil
}
