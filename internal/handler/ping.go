// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"proshop/internal/api"
	"proshop/internal/cache"
	"proshop/internal/database"

	"github.com/labstack/echo/v4"
)

// PingHandler 檢查資料庫與快取（需通過認證）
// @Summary     Dependency check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.PingResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		// 未設定 Redis 時略過
		if cch != nil {
			if err := cch.Set(ctx, "health:ping", "pong", time.Minute).Err(); err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, api.PingResponse{Message: "pong"})
	}
}
