// File: internal/model/product.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	Name         string    `db:"name" json:"name"`
	Slug         string    `db:"slug" json:"slug"`
	Image        string    `db:"image" json:"image"`
	Brand        string    `db:"brand" json:"brand"`
	Category     string    `db:"category" json:"category"`
	Description  string    `db:"description" json:"description"`
	Price        float64   `db:"price" json:"price"`
	CountInStock int       `db:"count_in_stock" json:"count_in_stock"`
	Rating       float64   `db:"rating" json:"rating"`
	NumReviews   int       `db:"num_reviews" json:"num_reviews"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
