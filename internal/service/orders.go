package service

import (
	"context"
	"fmt"
	"math"

	"proshop/internal/database"
	"proshop/internal/model"
	"proshop/internal/store"

	"github.com/google/uuid"
)

const (
	freeShippingOver = 100.0
	shippingFee      = 10.0
	taxRate          = 0.15
)

var (
	storeCreateOrder        = store.CreateOrder
	storeGetOrderByID       = store.GetOrderByID
	storeListOrdersByUser   = store.ListOrdersByUser
	storeListOrders         = store.ListOrders
	storeMarkOrderPaid      = store.MarkOrderPaid
	storeMarkOrderDelivered = store.MarkOrderDelivered
)

// LineItem 客戶端只能指定商品與數量，價格一律取自商品資料
type LineItem struct {
	ProductID uuid.UUID
	Qty       int
}

type NewOrder struct {
	Items           []LineItem
	ShippingAddress model.ShippingAddress
	PaymentMethod   string
}

type Orders struct {
	db database.DB
}

func NewOrders(db database.DB) *Orders {
	return &Orders{db: db}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Prices 計算商品小計、稅、運費與總額
func Prices(items []model.OrderItem) (itemsPrice, taxPrice, shippingPrice, totalPrice float64) {
	for _, it := range items {
		itemsPrice += it.Price * float64(it.Qty)
	}
	itemsPrice = roundCents(itemsPrice)
	if itemsPrice <= freeShippingOver {
		shippingPrice = shippingFee
	}
	taxPrice = roundCents(itemsPrice * taxRate)
	totalPrice = roundCents(itemsPrice + taxPrice + shippingPrice)
	return
}

// Place 以目前的商品資料建立 user 的訂單
func (o *Orders) Place(ctx context.Context, user uuid.UUID, in NewOrder) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	ids := make([]uuid.UUID, 0, len(in.Items))
	for _, li := range in.Items {
		ids = append(ids, li.ProductID)
	}
	var created *model.Order
	// 價格讀取與寫入訂單在同一個 transaction
	err := database.WithTx(ctx, o.db, func(q database.Querier) error {
		products, err := storeGetProductsByIDs(ctx, q, ids)
		if err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(in.Items))
		for _, li := range in.Items {
			p, ok := products[li.ProductID]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownItem, li.ProductID)
			}
			items = append(items, model.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Image:     p.Image,
				Price:     p.Price,
				Qty:       li.Qty,
			})
		}

		order := &model.Order{
			UserID:          user,
			Items:           items,
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   in.PaymentMethod,
		}
		order.ItemsPrice, order.TaxPrice, order.ShippingPrice, order.TotalPrice = Prices(items)

		created, err = storeCreateOrder(ctx, q, order)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("Place: %w", err)
	}
	return created, nil
}

// Get 只有訂單擁有者或管理員可以讀取
func (o *Orders) Get(ctx context.Context, viewer *model.User, id uuid.UUID) (*model.Order, error) {
	order, err := storeGetOrderByID(ctx, o.db, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if order.UserID != viewer.ID && !viewer.IsAdmin {
		return nil, ErrOrderAccess
	}
	return order, nil
}

func (o *Orders) Mine(ctx context.Context, user uuid.UUID) ([]model.Order, error) {
	return storeListOrdersByUser(ctx, o.db, user)
}

func (o *Orders) All(ctx context.Context) ([]model.Order, error) {
	return storeListOrders(ctx, o.db)
}

func (o *Orders) Pay(ctx context.Context, viewer *model.User, id uuid.UUID, result model.PaymentResult) (*model.Order, error) {
	if _, err := o.Get(ctx, viewer, id); err != nil {
		return nil, err
	}
	order, err := storeMarkOrderPaid(ctx, o.db, id, result)
	if err != nil {
		return nil, fmt.Errorf("Pay: %w", err)
	}
	return order, nil
}

func (o *Orders) Deliver(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := storeMarkOrderDelivered(ctx, o.db, id)
	if err != nil {
		return nil, fmt.Errorf("Deliver: %w", err)
	}
	return order, nil
}
