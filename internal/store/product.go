package store

import (
	"context"
	"strings"

	"proshop/internal/database"
	"proshop/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, user_id, name, slug, image, brand, category, description,
	price, count_in_stock, rating, num_reviews, created_at, updated_at`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductFilter narrows ListProducts. Keyword matches the name case-insensitively.
type ProductFilter struct {
	Keyword string
	Limit   uint64
	Offset  uint64
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Slug,
		&p.Image,
		&p.Brand,
		&p.Category,
		&p.Description,
		&p.Price,
		&p.CountInStock,
		&p.Rating,
		&p.NumReviews,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func CreateProduct(ctx context.Context, db database.DB, p *model.Product) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO products
		    (user_id, name, slug, image, brand, category, description, price, count_in_stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, rating, num_reviews, created_at, updated_at`,
		p.UserID,
		p.Name,
		p.Slug,
		p.Image,
		p.Brand,
		p.Category,
		p.Description,
		p.Price,
		p.CountInStock,
	)
	if err := row.Scan(&p.ID, &p.Rating, &p.NumReviews, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, wrap("CreateProduct", err)
	}
	return p, nil
}

func GetProductByID(ctx context.Context, db database.DB, id uuid.UUID) (*model.Product, error) {
	row := db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p := &model.Product{}
	if err := scanProduct(row, p); err != nil {
		return nil, wrap("GetProductByID", err)
	}
	return p, nil
}

// GetProductsByIDs returns the products found, keyed by id. Missing ids are
// simply absent from the map. Rows are share-locked when q is a transaction.
func GetProductsByIDs(ctx context.Context, db database.Querier, ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	params := make([]string, len(ids))
	for i, id := range ids {
		params[i] = id.String()
	}
	rows, err := db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1::uuid[]) FOR SHARE`,
		params,
	)
	if err != nil {
		return nil, wrap("GetProductsByIDs", err)
	}
	defer rows.Close()

	found := make(map[uuid.UUID]model.Product, len(ids))
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, wrap("GetProductsByIDs", err)
		}
		found[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("GetProductsByIDs", err)
	}
	return found, nil
}

func productWhere(b sq.SelectBuilder, f ProductFilter) sq.SelectBuilder {
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		b = b.Where(sq.ILike{"name": "%" + likeEscaper.Replace(kw) + "%"})
	}
	return b
}

func listProductsQuery(f ProductFilter) (string, []any, error) {
	b := productWhere(psql.Select(productColumns).From("products"), f).
		OrderBy("created_at DESC", "id")
	if f.Limit > 0 {
		b = b.Limit(f.Limit).Offset(f.Offset)
	}
	return b.ToSql()
}

func countProductsQuery(f ProductFilter) (string, []any, error) {
	return productWhere(psql.Select("COUNT(*)").From("products"), f).ToSql()
}

// ListProducts returns one page of products and the total number matching f.
func ListProducts(ctx context.Context, db database.DB, f ProductFilter) ([]model.Product, int, error) {
	countSQL, countArgs, err := countProductsQuery(f)
	if err != nil {
		return nil, 0, wrap("ListProducts", err)
	}
	var total int
	if err := db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, wrap("ListProducts", err)
	}

	query, args, err := listProductsQuery(f)
	if err != nil {
		return nil, 0, wrap("ListProducts", err)
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrap("ListProducts", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, wrap("ListProducts", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrap("ListProducts", err)
	}
	return products, total, nil
}

func UpdateProduct(ctx context.Context, db database.DB, p *model.Product) error {
	row := db.QueryRow(ctx,
		`UPDATE products SET
		    name = $1,
		    slug = $2,
		    image = $3,
		    brand = $4,
		    category = $5,
		    description = $6,
		    price = $7,
		    count_in_stock = $8,
		    updated_at = now()
		 WHERE id = $9
		 RETURNING updated_at`,
		p.Name,
		p.Slug,
		p.Image,
		p.Brand,
		p.Category,
		p.Description,
		p.Price,
		p.CountInStock,
		p.ID,
	)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		return wrap("UpdateProduct", err)
	}
	return nil
}

func DeleteProduct(ctx context.Context, db database.DB, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return wrap("DeleteProduct", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteProduct", pgx.ErrNoRows)
	}
	return nil
}
