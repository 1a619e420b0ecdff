package service

import (
	"context"
	"fmt"
	"math"

	"proshop/internal/database"
	"proshop/internal/model"
	"proshop/internal/store"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// PageSize 商品列表每頁筆數
const PageSize = 8

var (
	storeCreateProduct    = store.CreateProduct
	storeGetProductByID   = store.GetProductByID
	storeGetProductsByIDs = store.GetProductsByIDs
	storeListProducts     = store.ListProducts
	storeUpdateProduct    = store.UpdateProduct
	storeDeleteProduct    = store.DeleteProduct
)

// ProductInput 建立與更新商品的欄位
type ProductInput struct {
	Name         string
	Image        string
	Brand        string
	Category     string
	Description  string
	Price        float64
	CountInStock int
}

// SampleProduct 管理員未帶內容建立商品時使用的預設值
var SampleProduct = ProductInput{
	Name:        "Sample name",
	Image:       "/images/sample.jpg",
	Brand:       "Sample brand",
	Category:    "Sample category",
	Description: "Sample description",
}

// ProductPage 一頁商品
type ProductPage struct {
	Products []model.Product
	Page     int
	Pages    int
}

type Catalog struct {
	db database.DB
}

func NewCatalog(db database.DB) *Catalog {
	return &Catalog{db: db}
}

// MaxPage 限制頁碼，避免 OFFSET 溢位
const MaxPage = math.MaxInt32 / PageSize

// List page 從 1 開始，小於 1 視為第 1 頁，大於 MaxPage 視為 MaxPage
func (c *Catalog) List(ctx context.Context, keyword string, page int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	products, total, err := storeListProducts(ctx, c.db, store.ProductFilter{
		Keyword: keyword,
		Limit:   PageSize,
		Offset:  uint64(page-1) * PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return &ProductPage{
		Products: products,
		Page:     page,
		Pages:    int(math.Ceil(float64(total) / PageSize)),
	}, nil
}

func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return storeGetProductByID(ctx, c.db, id)
}

// Create 由 owner 建立商品，slug 取自名稱
func (c *Catalog) Create(ctx context.Context, owner uuid.UUID, in ProductInput) (*model.Product, error) {
	p := &model.Product{UserID: owner}
	apply(p, in)
	created, err := storeCreateProduct(ctx, c.db, p)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return created, nil
}

func (c *Catalog) Update(ctx context.Context, id uuid.UUID, in ProductInput) (*model.Product, error) {
	p, err := storeGetProductByID(ctx, c.db, id)
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	apply(p, in)
	if err := storeUpdateProduct(ctx, c.db, p); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return p, nil
}

func (c *Catalog) Delete(ctx context.Context, id uuid.UUID) error {
	if err := storeDeleteProduct(ctx, c.db, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func apply(p *model.Product, in ProductInput) {
	p.Name = in.Name
	p.Slug = slug.Make(in.Name)
	p.Image = in.Image
	p.Brand = in.Brand
	p.Category = in.Category
	p.Description = in.Description
	p.Price = in.Price
	p.CountInStock = in.CountInStock
}
