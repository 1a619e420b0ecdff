package products

import (
	"context"
	"net/http"
	"strconv"

	"proshop/internal/api"
	"proshop/internal/handler"
	"proshop/internal/middleware"
	"proshop/internal/model"
	"proshop/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Catalog 是商品 handler 需要的操作
type Catalog interface {
	List(ctx context.Context, keyword string, page int) (*service.ProductPage, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, owner uuid.UUID, in service.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, in service.ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func toInput(req api.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:         req.Name,
		Image:        req.Image,
		Brand:        req.Brand,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	}
}

// @Summary     List products
// @Description 依關鍵字搜尋商品名稱，每頁 8 筆
// @Tags        products
// @Produce     json
// @Param       keyword query    string false "名稱關鍵字"
// @Param       page    query    int    false "頁碼 (從 1 開始)"
// @Success     200     {object} api.ProductPageResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Router      /products [get]
func ListProductsHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := 1
		if p := c.QueryParam("page"); p != "" {
			n, err := strconv.Atoi(p)
			if err != nil {
				return handler.BadRequest(c, "invalid page")
			}
			page = n
		}
		result, err := catalog.List(c.Request().Context(), c.QueryParam("keyword"), page)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.ProductPageResponse{
			Products: result.Products,
			Page:     result.Page,
			Pages:    result.Pages,
		})
	}
}

// @Summary     Get a product
// @Tags        products
// @Produce     json
// @Param       id  path     string true "商品 ID (UUID)"
// @Success     200 {object} model.Product
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse "商品不存在"
// @Router      /products/{id} [get]
func GetProductHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamUUID(c, "id")
		if err != nil {
			return err
		}
		p, err := catalog.Get(c.Request().Context(), id)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, p)
	}
}

// @Summary     Create a product
// @Description 管理員建立商品；body 為空時建立範例商品供後續編輯
// @Tags        products
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.ProductRequest false "商品資料"
// @Success     201  {object} model.Product
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products [post]
func CreateProductHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ProductRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid form data")
		}

		in := service.SampleProduct
		if req != (api.ProductRequest{}) {
			if err := c.Validate(&req); err != nil {
				return handler.BadRequest(c, err.Error())
			}
			in = toInput(req)
		}

		owner := middleware.CurrentUser(c)
		if owner == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		p, err := catalog.Create(c.Request().Context(), owner.ID, in)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, p)
	}
}

// @Summary     Update a product
// @Tags        products
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       id   path     string             true "商品 ID (UUID)"
// @Param       body body     api.ProductRequest true "商品資料"
// @Success     200  {object} model.Product
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{id} [put]
func UpdateProductHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamUUID(c, "id")
		if err != nil {
			return err
		}
		var req api.ProductRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid form data")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}
		p, err := catalog.Update(c.Request().Context(), id, toInput(req))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, p)
	}
}

// @Summary     Delete a product
// @Tags        products
// @Produce     json
// @Param       id  path     string true "商品 ID (UUID)"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{id} [delete]
func DeleteProductHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamUUID(c, "id")
		if err != nil {
			return err
		}
		if err := catalog.Delete(c.Request().Context(), id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "product removed"})
	}
}
