package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-advisory-api/internal/service"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
	"github.com/noah-isme/uni-advisory-api/pkg/response"
)

// EnrollmentHandler exposes enrollment mutation endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Add godoc
// @Summary Enroll a student in courses
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body service.EnrollRequest true "Course ids"
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /students/{id}/enrollments [post]
func (h *EnrollmentHandler) Add(c *gin.Context) {
	studentID, err := studentIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.enrollments.Add(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Remove godoc
// @Summary Withdraw a student from courses
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body service.EnrollRequest true "Course ids"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /students/{id}/enrollments [delete]
func (h *EnrollmentHandler) Remove(c *gin.Context) {
	studentID, err := studentIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	withdrawn, err := h.enrollments.Remove(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"withdrawn_course_ids": withdrawn})
}
