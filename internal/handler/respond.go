package handler

import (
	"errors"
	"net/http"

	"proshop/internal/api"
	"proshop/internal/logger"
	"proshop/internal/service"
	"proshop/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Status 把服務層錯誤對應到 HTTP 狀態碼與對外訊息
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, "conflicting record"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrOrderAccess):
		return http.StatusForbidden, "not authorized to access this order"
	case errors.Is(err, service.ErrEmptyOrder):
		return http.StatusBadRequest, service.ErrEmptyOrder.Error()
	case errors.Is(err, service.ErrUnknownItem):
		return http.StatusBadRequest, service.ErrUnknownItem.Error()
	case errors.Is(err, service.ErrAdminDelete):
		return http.StatusBadRequest, service.ErrAdminDelete.Error()
	case errors.Is(err, service.ErrPasswordTooLong):
		return http.StatusBadRequest, service.ErrPasswordTooLong.Error()
	case errors.Is(err, service.ErrInvalidName):
		return http.StatusBadRequest, service.ErrInvalidName.Error()
	}
	// ErrDataIntegrity 與其他錯誤不對外揭露細節
	return http.StatusInternalServerError, "internal server error"
}

// Error 依錯誤種類回傳 api.ErrorResponse；5xx 會寫入 log
func Error(c echo.Context, err error) error {
	status, msg := Status(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request().Context()).Error().Err(err).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return c.JSON(status, api.ErrorResponse{Message: msg})
}

// BadRequest 綁定或驗證失敗
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msg})
}

// ParamUUID 解析 path 參數；格式錯誤回傳 400 的 echo.HTTPError
func ParamUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
