package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-advisory-api/internal/service"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
	"github.com/noah-isme/uni-advisory-api/pkg/response"
)

// WindowHandler exposes enrollment window administration and status.
type WindowHandler struct {
	windows *service.WindowService
}

// NewWindowHandler constructs WindowHandler.
func NewWindowHandler(windows *service.WindowService) *WindowHandler {
	return &WindowHandler{windows: windows}
}

// Set godoc
// @Summary Configure the enrollment window
// @Tags Enrollment window
// @Accept json
// @Produce json
// @Param payload body service.SetWindowRequest true "Window bounds"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /enrollment-window [post]
func (h *WindowHandler) Set(c *gin.Context) {
	var req service.SetWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	window, err := h.windows.Set(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, window)
}

// Get godoc
// @Summary Current enrollment window configuration
// @Tags Enrollment window
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /enrollment-window [get]
func (h *WindowHandler) Get(c *gin.Context) {
	window, err := h.windows.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, window)
}

// Status godoc
// @Summary Enrollment window status
// @Tags Enrollment window
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollment-window/status [get]
func (h *WindowHandler) Status(c *gin.Context) {
	status, err := h.windows.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}
