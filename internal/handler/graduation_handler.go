package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-advisory-api/internal/service"
	"github.com/noah-isme/uni-advisory-api/pkg/response"
)

// GraduationHandler exposes graduation evaluation endpoints.
type GraduationHandler struct {
	graduations *service.GraduationService
}

// NewGraduationHandler constructs GraduationHandler.
func NewGraduationHandler(graduations *service.GraduationService) *GraduationHandler {
	return &GraduationHandler{graduations: graduations}
}

// Get godoc
// @Summary Graduation eligibility for a student
// @Tags Graduation
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/graduation [get]
func (h *GraduationHandler) Get(c *gin.Context) {
	studentID, err := studentIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.graduations.Evaluate(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Report godoc
// @Summary Downloadable graduation progress report
// @Tags Graduation
// @Produce application/pdf
// @Produce text/csv
// @Param id path int true "Student ID"
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {file} binary
// @Router /students/{id}/graduation/report [get]
func (h *GraduationHandler) Report(c *gin.Context) {
	studentID, err := studentIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := c.DefaultQuery("format", service.ReportFormatPDF)
	payload, contentType, err := h.graduations.Render(c.Request.Context(), studentID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("graduation-report-%d.%s", studentID, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
