package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-advisory-api/internal/models"
	"github.com/noah-isme/uni-advisory-api/internal/service"
)

type stubWindowRepo struct {
	window *models.EnrollmentWindow
}

func (s *stubWindowRepo) Get(ctx context.Context) (*models.EnrollmentWindow, error) {
	return s.window, nil
}

func (s *stubWindowRepo) Set(ctx context.Context, window models.EnrollmentWindow) error {
	s.window = &window
	return nil
}

func buildWindowRouter(repo *stubWindowRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWindowHandler(service.NewWindowService(repo, nil, nil))
	router := gin.New()
	router.POST("/enrollment-window", h.Set)
	router.GET("/enrollment-window", h.Get)
	router.GET("/enrollment-window/status", h.Status)
	return router
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestWindowRoutes(t *testing.T) {
	repo := &stubWindowRepo{}
	router := buildWindowRouter(repo)

	t.Run("status disabled without window", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/enrollment-window/status", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"DISABLED"`)
	})

	t.Run("set accepts valid bounds", func(t *testing.T) {
		payload := `{"start":"2026-09-01 08:00:00","end":"2026-09-15 23:59:59"}`
		req, _ := http.NewRequest(http.MethodPost, "/enrollment-window", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, repo.window)
		require.True(t, repo.window.End.After(repo.window.Start))
	})

	t.Run("set rejects inverted bounds", func(t *testing.T) {
		payload := `{"start":"2026-09-15 00:00:00","end":"2026-09-01 00:00:00"}`
		req, _ := http.NewRequest(http.MethodPost, "/enrollment-window", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
		require.Contains(t, resp.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("status reflects stored window", func(t *testing.T) {
		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(time.Hour)
		repo.window = &models.EnrollmentWindow{Start: start, End: end}
		req, _ := http.NewRequest(http.MethodGet, "/enrollment-window/status", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"OPEN"`)
	})
}

func TestStudentIDParamValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/students/:id/evaluation", func(c *gin.Context) {
		if _, err := studentIDParam(c); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/students/abc/evaluation", nil)
	require.Equal(t, http.StatusBadRequest, performRequest(router, req).Code)

	req, _ = http.NewRequest(http.MethodGet, "/students/100/evaluation", nil)
	require.Equal(t, http.StatusOK, performRequest(router, req).Code)
}
