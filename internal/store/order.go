package store

import (
	"context"

	"proshop/internal/database"
	"proshop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, user_id, items, shipping_address, payment_method, payment_result,
	items_price, tax_price, shipping_price, total_price,
	is_paid, paid_at, is_delivered, delivered_at, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID,
		&o.UserID,
		&o.Items,
		&o.ShippingAddress,
		&o.PaymentMethod,
		&o.PaymentResult,
		&o.ItemsPrice,
		&o.TaxPrice,
		&o.ShippingPrice,
		&o.TotalPrice,
		&o.IsPaid,
		&o.PaidAt,
		&o.IsDelivered,
		&o.DeliveredAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}

func CreateOrder(ctx context.Context, db database.Querier, o *model.Order) (*model.Order, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO orders
		    (user_id, items, shipping_address, payment_method,
		     items_price, tax_price, shipping_price, total_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		o.UserID,
		o.Items,
		o.ShippingAddress,
		o.PaymentMethod,
		o.ItemsPrice,
		o.TaxPrice,
		o.ShippingPrice,
		o.TotalPrice,
	)
	if err := row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, wrap("CreateOrder", err)
	}
	return o, nil
}

func GetOrderByID(ctx context.Context, db database.DB, id uuid.UUID) (*model.Order, error) {
	row := db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o := &model.Order{}
	if err := scanOrder(row, o); err != nil {
		return nil, wrap("GetOrderByID", err)
	}
	return o, nil
}

func queryOrders(ctx context.Context, db database.DB, op, sql string, args ...any) ([]model.Order, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, wrap(op, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return orders, nil
}

func ListOrdersByUser(ctx context.Context, db database.DB, userID uuid.UUID) ([]model.Order, error) {
	return queryOrders(ctx, db, "ListOrdersByUser",
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func ListOrders(ctx context.Context, db database.DB) ([]model.Order, error) {
	return queryOrders(ctx, db, "ListOrders",
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

// MarkOrderPaid sets is_paid and paid_at and records the provider's result.
func MarkOrderPaid(ctx context.Context, db database.DB, id uuid.UUID, result model.PaymentResult) (*model.Order, error) {
	row := db.QueryRow(ctx,
		`UPDATE orders SET is_paid = TRUE, paid_at = now(), payment_result = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING `+orderColumns,
		result,
		id,
	)
	o := &model.Order{}
	if err := scanOrder(row, o); err != nil {
		return nil, wrap("MarkOrderPaid", err)
	}
	return o, nil
}

func MarkOrderDelivered(ctx context.Context, db database.DB, id uuid.UUID) (*model.Order, error) {
	row := db.QueryRow(ctx,
		`UPDATE orders SET is_delivered = TRUE, delivered_at = now(), updated_at = now()
		 WHERE id = $1
		 RETURNING `+orderColumns,
		id,
	)
	o := &model.Order{}
	if err := scanOrder(row, o); err != nil {
		return nil, wrap("MarkOrderDelivered", err)
	}
	return o, nil
}
