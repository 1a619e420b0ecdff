package users

import (
	"context"
	"net/http"
	"strings"
	"time"

	"proshop/internal/api"
	"proshop/internal/handler"
	"proshop/internal/middleware"
	"proshop/internal/model"
	"proshop/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Accounts 是 users handler 需要的帳號操作
type Accounts interface {
	Create(ctx context.Context, nu service.NewUser) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, u *model.User, upd service.ProfileUpdate) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, upd service.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TokenIssuer interface {
	Issue(user model.User) (string, time.Time, error)
}

// @Summary     Register a new user
// @Description 建立新帳號並回傳存取令牌 (Email 會自動轉小寫)
// @Tags        users
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse "Email 已被註冊"
// @Failure     500  {object} api.ErrorResponse
// @Router      /users [post]
func RegisterHandler(accounts Accounts, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid form data")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}
		if strings.TrimSpace(req.Name) == "" {
			return handler.BadRequest(c, service.ErrInvalidName.Error())
		}

		user, err := accounts.Create(c.Request().Context(), service.NewUser{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return handler.Error(c, err)
		}

		token, expiresAt, err := tokens.Issue(*user)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, api.AuthResponse{
			UserResponse: api.NewUserResponse(user),
			Token:        token,
			ExpiresAt:    expiresAt,
		})
	}
}

// @Summary     Get current user profile
// @Description 透過 JWT Token 取得當前使用者詳細資訊
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/profile [get]
func GetProfileHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Update current user profile
// @Description 更新當前使用者姓名、Email；帶入 password 時才會重新雜湊密碼
// @Tags        users
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.UpdateProfileRequest true "要更新的欄位"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/profile [put]
func UpdateProfileHandler(accounts Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		var req api.UpdateProfileRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid form data")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		updated, err := accounts.UpdateProfile(c.Request().Context(), user, service.ProfileUpdate{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(updated))
	}
}

// @Summary     List users
// @Description 管理員取得所有使用者
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(accounts Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := accounts.List(c.Request().Context())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponses(users))
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       id   path      string  true  "使用者 ID (UUID)"
// @Success     200  {object}  api.UserResponse
// @Failure     400  {object}  api.ErrorResponse  "參數錯誤"
// @Failure     404  {object}  api.ErrorResponse  "使用者不存在"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Security    ApiKeyAuth
// @Router      /users/{id} [get]
func GetUserHandler(accounts Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamUUID(c, "id")
		if err != nil {
			return err
		}
		user, err := accounts.FindByID(c.Request().Context(), id)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Update a user by ID
// @Description 管理員更新使用者姓名、Email 及管理員狀態
// @Tags        users
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       id   path     string                true "使用者 ID (UUID)"
// @Param       body body     api.UpdateUserRequest true "要更新的欄位"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [put]
func UpdateUserHandler(accounts Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamUUID(c, "id")
		if err != nil {
			return err
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid form data")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		user, err := accounts.UpdateUser(c.Request().Context(), id, service.UserUpdate{
			Name:    req.Name,
			Email:   req.Email,
			IsAdmin: req.IsAdmin,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Delete a user by ID
// @Description 根據使用者 ID 刪除使用者帳號；管理員帳號不可刪除
// @Tags        users
// @Produce     json
// @Param       id   path      string  true  "使用者 ID (UUID)"
// @Success     200  {object}  api.MessageResponse
// @Failure     400  {object}  api.ErrorResponse  "參數錯誤或刪除管理員"
// @Failure     404  {object}  api.ErrorResponse
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(accounts Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamUUID(c, "id")
		if err != nil {
			return err
		}
		if err := accounts.Delete(c.Request().Context(), id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "user removed"})
	}
}
