package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"rickbags/internal/domain"
)

const orderColumns = `id, order_number, user_id, subtotal, shipping_cost, tax, discount, total, status, payment_status, shipping_address, COALESCE(shipping_phone, ''), COALESCE(tracking_number, ''), COALESCE(payment_method, ''), COALESCE(customer_notes, ''), COALESCE(admin_notes, ''), created_at, updated_at, shipped_at, delivered_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) CreateWithItems(ctx context.Context, o domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const orderQ = `
INSERT INTO orders (order_number, user_id, subtotal, shipping_cost, tax, discount, total, status, payment_status, shipping_address, shipping_phone)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''))
RETURNING id, created_at, updated_at
`
	err = tx.QueryRow(ctx, orderQ,
		o.OrderNumber, o.UserID, o.Subtotal, o.ShippingCost, o.Tax, o.Discount, o.Total,
		o.Status, o.PaymentStatus, o.ShippingAddress, o.ShippingPhone,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("order repo: create number=%s error=%v", o.OrderNumber, err)
		return nil, err
	}

	const itemQ = `
INSERT INTO order_items (order_id, product_id, product_name, product_sku, price, quantity, custom_specs)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
RETURNING id, created_at
`
	for i := range items {
		items[i].OrderID = o.ID
		if err := tx.QueryRow(ctx, itemQ,
			o.ID, items[i].ProductID, items[i].ProductName, items[i].ProductSKU,
			items[i].Price, items[i].Quantity, items[i].CustomSpecs,
		).Scan(&items[i].ID, &items[i].CreatedAt); err != nil {
			r.logger.Printf("order repo: insert item order=%d error=%v", o.ID, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.fetchOrder(ctx, q, id)
}

func (r *postgresRepo) GetForUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`
	return r.fetchOrder(ctx, q, id, userID)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, q, userID)
}

func (r *postgresRepo) List(ctx context.Context, status string, page, perPage int) ([]domain.Order, int64, error) {
	var total int64
	var err error
	if status != "" {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&total)
	} else {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	}
	if err != nil {
		return nil, 0, err
	}

	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * perPage

	var orders []domain.Order
	if status != "" {
		orders, err = r.queryMany(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, status, perPage, offset)
	} else {
		orders, err = r.queryMany(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, perPage, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *postgresRepo) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`
	return r.queryMany(ctx, q, limit)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, upd StatusUpdate) error {
	const q = `
UPDATE orders
SET status = $1,
    tracking_number = COALESCE(NULLIF($2, ''), tracking_number),
    shipped_at = COALESCE($3, shipped_at),
    delivered_at = COALESCE($4, delivered_at),
    updated_at = now()
WHERE id = $5
`
	cmd, err := r.pool.Exec(ctx, q, upd.Status, upd.TrackingNumber, upd.ShippedAt, upd.DeliveredAt, id)
	if err != nil {
		r.logger.Printf("order repo: update status id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Metrics(ctx context.Context) (Metrics, error) {
	const q = `
SELECT COUNT(*),
       COALESCE(SUM(total), 0),
       COUNT(*) FILTER (WHERE status = 'pending')
FROM orders
`
	var m Metrics
	var revenue decimal.Decimal
	if err := r.pool.QueryRow(ctx, q).Scan(&m.TotalOrders, &revenue, &m.PendingOrders); err != nil {
		return Metrics{}, err
	}
	m.TotalRevenue = revenue
	return m, nil
}

func (r *postgresRepo) fetchOrder(ctx context.Context, q string, args ...interface{}) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: fetch error=%v", err)
		return nil, err
	}

	const itemsQ = `
SELECT id, order_id, product_id, product_name, COALESCE(product_sku, ''), price, quantity, custom_specs, created_at
FROM order_items
WHERE order_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, itemsQ, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.ProductSKU, &item.Price, &item.Quantity, &item.CustomSpecs, &item.CreatedAt); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) queryMany(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.Subtotal,
		&o.ShippingCost,
		&o.Tax,
		&o.Discount,
		&o.Total,
		&o.Status,
		&o.PaymentStatus,
		&o.ShippingAddress,
		&o.ShippingPhone,
		&o.TrackingNumber,
		&o.PaymentMethod,
		&o.CustomerNotes,
		&o.AdminNotes,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.ShippedAt,
		&o.DeliveredAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
