package api

import "proshop/internal/model"

// ProductRequest 建立或更新商品；建立時整個 body 為空則使用範例商品
// swagger:model api.ProductRequest
type ProductRequest struct {
	Name         string  `json:"name" form:"name" validate:"required" example:"Airpods Wireless Bluetooth Headphones"`
	Image        string  `json:"image" form:"image" example:"/images/airpods.jpg"`
	Brand        string  `json:"brand" form:"brand" example:"Apple"`
	Category     string  `json:"category" form:"category" example:"Electronics"`
	Description  string  `json:"description" form:"description" example:"Bluetooth technology lets you connect it with compatible devices wirelessly"`
	Price        float64 `json:"price" form:"price" validate:"gte=0" example:"89.99"`
	CountInStock int     `json:"count_in_stock" form:"count_in_stock" validate:"gte=0" example:"10"`
}

// swagger:model api.ProductPageResponse
type ProductPageResponse struct {
	Products []model.Product `json:"products"`
	Page     int             `json:"page" example:"1"`
	Pages    int             `json:"pages" example:"3"`
}
