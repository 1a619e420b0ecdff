// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"proshop/internal/api"
	"proshop/internal/handler"
	"proshop/internal/model"

	"github.com/labstack/echo/v4"
)

// Authenticator 以 email / 密碼驗證使用者
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

// TokenIssuer 發行存取令牌
type TokenIssuer interface {
	Issue(user model.User) (string, time.Time, error)
}

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳使用者資料、存取令牌與到期時間
// @Tags        auth
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/login [post]
func LoginHandler(accounts Authenticator, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, fmt.Sprintf("無效的表單資料: %v", err))
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		user, err := accounts.Authenticate(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return handler.Error(c, err)
		}

		token, expiresAt, err := tokens.Issue(*user)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.AuthResponse{
			UserResponse: api.NewUserResponse(user),
			Token:        token,
			ExpiresAt:    expiresAt,
		})
	}
}
