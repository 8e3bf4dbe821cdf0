package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kargo-booking/internal/apperr"
	"kargo-booking/internal/domain"
)

// OrderRepo persists finalized orders. Sections are stored as jsonb
// documents; pricing and status live in columns so they can be queried.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

const orderColumns = `id, customer_id, status, item_value, delivery_fee, total,
	sender, receiver, items, delivery, locations, created_at, updated_at`

// Create inserts a finalized order. The id is assigned by the caller.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	sender, receiver, items, delivery, locations, err := marshalSections(o)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", o.ID, err)
	}

	_, err = r.db.Exec(ctx, `
        INSERT INTO orders (id, customer_id, status, item_value, delivery_fee, total,
                            sender, receiver, items, delivery, locations, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    `, o.ID, o.CustomerID, o.Status, o.Pricing.ItemValue, o.Pricing.DeliveryFee, o.Pricing.Total,
		sender, receiver, items, delivery, locations, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create order %s: %w", o.ID, err)
	}
	return nil
}

// Get returns an order by id, or nil when it does not exist.
func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return o, nil
}

// ListByCustomer returns a customer's orders, newest first, optionally
// filtered by status.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string, status *domain.OrderStatus) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id=$1`
	args := []any{customerID}
	if status != nil {
		q += ` AND status=$2`
		args = append(args, *status)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders for %s: %w", customerID, err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// UpdateStatus moves an order from one status to another. It returns false
// when the order is missing or no longer in the expected status.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders SET status=$3, updated_at=now()
        WHERE id=$1 AND status=$2
    `, id, from, to)
	if err != nil {
		return false, fmt.Errorf("update order %s status: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

func marshalSections(o *domain.Order) (sender, receiver, items, delivery, locations []byte, err error) {
	if sender, err = json.Marshal(o.Sender); err != nil {
		return
	}
	if receiver, err = json.Marshal(o.Receiver); err != nil {
		return
	}
	if items, err = json.Marshal(o.Items); err != nil {
		return
	}
	if delivery, err = json.Marshal(o.Delivery); err != nil {
		return
	}
	locations, err = json.Marshal(o.Locations)
	return
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                                          domain.Order
		sender, receiver, items, delivery, locjson []byte
	)
	err := row.Scan(&o.ID, &o.CustomerID, &o.Status,
		&o.Pricing.ItemValue, &o.Pricing.DeliveryFee, &o.Pricing.Total,
		&sender, &receiver, &items, &delivery, &locjson,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sender, &o.Sender); err != nil {
		return nil, fmt.Errorf("decode order %s sender: %w", o.ID, err)
	}
	if err := json.Unmarshal(receiver, &o.Receiver); err != nil {
		return nil, fmt.Errorf("decode order %s receiver: %w", o.ID, err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order %s items: %w", o.ID, err)
	}
	if err := json.Unmarshal(delivery, &o.Delivery); err != nil {
		return nil, fmt.Errorf("decode order %s delivery: %w", o.ID, err)
	}
	if err := json.Unmarshal(locjson, &o.Locations); err != nil {
		return nil, fmt.Errorf("decode order %s locations: %w", o.ID, err)
	}
	return &o, nil
}
