package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-advisory-api/internal/service"
	"github.com/noah-isme/uni-advisory-api/pkg/response"
)

// EvaluationHandler exposes the academic evaluation endpoint.
type EvaluationHandler struct {
	evaluations *service.EvaluationService
}

// NewEvaluationHandler constructs EvaluationHandler.
func NewEvaluationHandler(evaluations *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

// Get godoc
// @Summary Academic evaluation and risk assessment for a student
// @Tags Evaluation
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/evaluation [get]
func (h *EvaluationHandler) Get(c *gin.Context) {
	studentID, err := studentIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.evaluations.Evaluate(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
