package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"proshop/internal/logger"
	"proshop/internal/model"
	"proshop/internal/service"
	"proshop/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ContextUserKey   = "user"
	ContextClaimsKey = "claims"
)

// TokenVerifier 驗證 bearer token
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

// UserFinder 依 id 取得使用者
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// RevocationChecker 查詢 token 是否已登出
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth 依序處理：未帶憑證 → 驗證 token → 載入使用者 → 檢查權限
type Auth struct {
	tokens  TokenVerifier
	users   UserFinder
	revoked RevocationChecker
}

func NewAuth(tokens TokenVerifier, users UserFinder, revoked RevocationChecker) *Auth {
	return &Auth{tokens: tokens, users: users, revoked: revoked}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

func (a *Auth) authenticate(c echo.Context) (*model.User, *service.Claims, error) {
	tokenString, err := bearerToken(c)
	if err != nil {
		return nil, nil, err
	}
	claims, err := a.tokens.Verify(tokenString)
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed")
	}

	ctx := c.Request().Context()
	if a.revoked != nil {
		revoked, err := a.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			// 無法確認時一律拒絕
			logger.FromContext(ctx).Error().Err(err).Msg("token revocation lookup failed")
			return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed")
		}
		if revoked {
			return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token revoked")
		}
	}

	user, err := a.users.FindByID(ctx, claims.UserUUID())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.FromContext(ctx).Error().Err(err).Msg("load token user failed")
		}
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "not authorized, user not found")
	}
	return user, claims, nil
}

// Protect 要求有效的 bearer token，並把使用者放進 context
func (a *Auth) Protect(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, claims, err := a.authenticate(c)
		if err != nil {
			return err
		}
		c.Set(ContextUserKey, user)
		c.Set(ContextClaimsKey, claims)
		return next(c)
	}
}

// Admin 需要管理員；未登入仍回 401 而不是 403
func (a *Auth) Admin(next echo.HandlerFunc) echo.HandlerFunc {
	return a.Protect(func(c echo.Context) error {
		if user := CurrentUser(c); user == nil || !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not authorized as an admin")
		}
		return next(c)
	})
}

// CurrentUser 回傳 Protect 放入的使用者，未經 Protect 時為 nil
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(ContextUserKey).(*model.User)
	return u
}

func CurrentClaims(c echo.Context) *service.Claims {
	claims, _ := c.Get(ContextClaimsKey).(*service.Claims)
	return claims
}
