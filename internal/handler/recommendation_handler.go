package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-advisory-api/internal/service"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
	"github.com/noah-isme/uni-advisory-api/pkg/response"
)

// RecommendationHandler exposes the course recommendation endpoint.
type RecommendationHandler struct {
	recommendations *service.RecommendationService
}

// NewRecommendationHandler constructs RecommendationHandler.
func NewRecommendationHandler(recommendations *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

func studentIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "student id must be a positive integer")
	}
	return id, nil
}

// Get godoc
// @Summary Course recommendations for a student
// @Tags Recommendations
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/recommendations [get]
func (h *RecommendationHandler) Get(c *gin.Context) {
	studentID, err := studentIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.recommendations.Recommend(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
