package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// PostgresStore reads and writes stock on a products table:
//
//	products(id bigserial, sku text unique, name text, stock_quantity int null,
//	         manage_stock bool, updated_at timestamptz)
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) FindIDBySKU(ctx context.Context, sku string) (string, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM products WHERE sku = $1 LIMIT 1`, sku).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

func (s *PostgresStore) Load(ctx context.Context, key string) (*Product, error) {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", key, err)
	}

	var (
		product  Product
		quantity sql.NullInt64
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT sku, name, stock_quantity, manage_stock, updated_at FROM products WHERE id = $1`, id,
	).Scan(&product.SKU, &product.Name, &quantity, &product.ManageStock, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if quantity.Valid {
		product.SetStockQuantity(int(quantity.Int64))
	}
	product.Key = key
	return &product, nil
}

func (s *PostgresStore) Save(ctx context.Context, product *Product) error {
	id, err := strconv.ParseInt(product.Key, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", product.Key, err)
	}

	var quantity sql.NullInt64
	if product.StockQuantity != nil {
		quantity = sql.NullInt64{Int64: int64(*product.StockQuantity), Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET stock_quantity = $1, manage_stock = $2, updated_at = NOW() WHERE id = $3`,
		quantity, product.ManageStock, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %d no longer exists", id)
	}
	return nil
}
