// File: internal/handler/auth/logout.go
package auth

import (
	"context"
	"net/http"
	"time"

	"proshop/internal/api"
	"proshop/internal/handler"
	"proshop/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Revoker 讓 token 在到期前失效
type Revoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
}

// LogoutHandler 撤銷目前的存取令牌
// @Summary     登出
// @Description 撤銷目前使用的存取令牌；未設定 Redis 時僅由客戶端丟棄令牌
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/logout [post]
func LogoutHandler(revoker Revoker) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)
		if claims == nil || claims.ExpiresAt == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
		}
		if err := revoker.Revoke(c.Request().Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out successfully"})
	}
}
