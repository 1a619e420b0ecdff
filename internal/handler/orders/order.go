package orders

import (
	"context"
	"net/http"

	"proshop/internal/api"
	"proshop/internal/handler"
	"proshop/internal/middleware"
	"proshop/internal/model"
	"proshop/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Orders 是訂單 handler 需要的操作
type Orders interface {
	Place(ctx context.Context, user uuid.UUID, in service.NewOrder) (*model.Order, error)
	Get(ctx context.Context, viewer *model.User, id uuid.UUID) (*model.Order, error)
	Mine(ctx context.Context, user uuid.UUID) ([]model.Order, error)
	All(ctx context.Context) ([]model.Order, error)
	Pay(ctx context.Context, viewer *model.User, id uuid.UUID, result model.PaymentResult) (*model.Order, error)
	Deliver(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

func currentUser(c echo.Context) (*model.User, error) {
	u := middleware.CurrentUser(c)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}
	return u, nil
}

// @Summary     Place an order
// @Description 建立訂單；價格、稅與運費由伺服器依商品資料計算
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateOrderRequest true "訂單內容"
// @Success     201  {object} model.Order
// @Failure     400  {object} api.ErrorResponse "沒有商品或商品不存在"
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /orders [post]
func CreateOrderHandler(orders Orders) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}
		var req api.CreateOrderRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid order data")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		items := make([]service.LineItem, 0, len(req.OrderItems))
		for _, it := range req.OrderItems {
			items = append(items, service.LineItem{ProductID: it.ProductID, Qty: it.Qty})
		}
		order, err := orders.Place(c.Request().Context(), user.ID, service.NewOrder{
			Items: items,
			ShippingAddress: model.ShippingAddress{
				Address:    req.ShippingAddress.Address,
				City:       req.ShippingAddress.City,
				PostalCode: req.ShippingAddress.PostalCode,
				Country:    req.ShippingAddress.Country,
			},
			PaymentMethod: req.PaymentMethod,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, order)
	}
}

// @Summary     List my orders
// @Tags        orders
// @Produce     json
// @Success     200 {array}  model.Order
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /orders/mine [get]
func MyOrdersHandler(orders Orders) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}
		list, err := orders.Mine(c.Request().Context(), user.ID)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     Get an order
// @Description 訂單擁有者或管理員可讀取
// @Tags        orders
// @Produce     json
// @Param       id  path     string true "訂單 ID (UUID)"
// @Success     200 {object} model.Order
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /orders/{id} [get]
func GetOrderHandler(orders Orders) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}
		id, err := handler.ParamUUID(c, "id")
		if err != nil {
			return err
		}
		order, err := orders.Get(c.Request().Context(), user, id)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, order)
	}
}

// @Summary     Mark an order as paid
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       id   path     string              true "訂單 ID (UUID)"
// @Param       body body     api.PayOrderRequest true "付款結果"
// @Success     200  {object} model.Order
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /orders/{id}/pay [put]
func PayOrderHandler(orders Orders) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}
		id, err := handler.ParamUUID(c, "id")
		if err != nil {
			return err
		}
		var req api.PayOrderRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid payment data")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}
		order, err := orders.Pay(c.Request().Context(), user, id, model.PaymentResult{
			ID:           req.ID,
			Status:       req.Status,
			UpdateTime:   req.UpdateTime,
			EmailAddress: req.EmailAddress,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, order)
	}
}

// @Summary     Mark an order as delivered
// @Tags        orders
// @Produce     json
// @Param       id  path     string true "訂單 ID (UUID)"
// @Success     200 {object} model.Order
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /orders/{id}/deliver [put]
func DeliverOrderHandler(orders Orders) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamUUID(c, "id")
		if err != nil {
			return err
		}
		order, err := orders.Deliver(c.Request().Context(), id)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, order)
	}
}

// @Summary     List all orders
// @Tags        orders
// @Produce     json
// @Success     200 {array}  model.Order
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /orders [get]
func ListOrdersHandler(orders Orders) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := orders.All(c.Request().Context())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}
