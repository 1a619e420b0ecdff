// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"proshop/internal/cache"
	"proshop/internal/database"
	"proshop/internal/handler"
	"proshop/internal/handler/auth"
	"proshop/internal/handler/orders"
	"proshop/internal/handler/products"
	"proshop/internal/handler/users"
	"proshop/internal/middleware"
	"proshop/internal/service"
)

// Deps 是路由需要的所有服務
type Deps struct {
	DB       database.DB
	Cache    cache.Cache // 未設定 Redis 時為 nil
	Accounts *service.Accounts
	Catalog  *service.Catalog
	Orders   *service.Orders
	Tokens   *service.TokenIssuer
	Denylist *cache.TokenDenylist
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	authz := middleware.NewAuth(d.Tokens, d.Accounts, d.Denylist)
	protect, admin := authz.Protect, authz.Admin

	e.GET("/health", handler.HealthHandler())

	api := e.Group("/api")

	// 依賴檢查（需登入）
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache), protect)

	// 註冊、登入、登出
	apiUsers := api.Group("/users")
	apiUsers.POST("", users.RegisterHandler(d.Accounts, d.Tokens))
	apiUsers.POST("/login", auth.LoginHandler(d.Accounts, d.Tokens))
	apiUsers.POST("/logout", auth.LogoutHandler(d.Denylist), protect)

	// 當前使用者個人資料
	apiUsers.GET("/profile", users.GetProfileHandler(), protect)
	apiUsers.PUT("/profile", users.UpdateProfileHandler(d.Accounts), protect)

	// 管理員專屬 Users CRUD
	apiUsers.GET("", users.ListUsersHandler(d.Accounts), admin)
	apiUsers.GET("/:id", users.GetUserHandler(d.Accounts), admin)
	apiUsers.PUT("/:id", users.UpdateUserHandler(d.Accounts), admin)
	apiUsers.DELETE("/:id", users.DeleteUserHandler(d.Accounts), admin)

	// 商品：讀取公開，寫入限管理員
	apiProducts := api.Group("/products")
	apiProducts.GET("", products.ListProductsHandler(d.Catalog))
	apiProducts.GET("/:id", products.GetProductHandler(d.Catalog))
	apiProducts.POST("", products.CreateProductHandler(d.Catalog), admin)
	apiProducts.PUT("/:id", products.UpdateProductHandler(d.Catalog), admin)
	apiProducts.DELETE("/:id", products.DeleteProductHandler(d.Catalog), admin)

	// 訂單
	apiOrders := api.Group("/orders")
	apiOrders.POST("", orders.CreateOrderHandler(d.Orders), protect)
	apiOrders.GET("/mine", orders.MyOrdersHandler(d.Orders), protect)
	apiOrders.GET("/:id", orders.GetOrderHandler(d.Orders), protect)
	apiOrders.PUT("/:id/pay", orders.PayOrderHandler(d.Orders), protect)
	apiOrders.PUT("/:id/deliver", orders.DeliverOrderHandler(d.Orders), admin)
	apiOrders.GET("", orders.ListOrdersHandler(d.Orders), admin)
}
