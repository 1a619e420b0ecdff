// File: internal/handler/health.go
package handler

import (
	"net/http"
	"time"

	"proshop/internal/api"

	"github.com/labstack/echo/v4"
)

var timeNow = time.Now

// HealthHandler 不需登入的存活檢查
// @Summary     Health check
// @Description 回傳服務狀態與目前時間
// @Tags        health
// @Produce     json
// @Success     200 {object} api.HealthResponse
// @Router      /health [get]
func HealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.HealthResponse{
			Status:    "OK",
			Message:   "Server is running healthy!",
			Timestamp: timeNow().UTC().Format(time.RFC3339),
		})
	}
}
