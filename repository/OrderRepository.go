package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"flowerStore/entities"
	"flowerStore/models"
)

type OrderRepository interface {
	Save(ctx context.Context, o entities.Order) (saved entities.Order, err error)
	GetAll(ctx context.Context) []entities.Order
	List(ctx context.Context) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) bool
	Delete(ctx context.Context, id string) bool
}

type OrderRepo struct {
	db *sql.DB
	cb *StoreBreaker
}

const orderColumns = `id, customer_name, phone_number, address, items, total, status, created_at`

func NewOrderRepository(conn *sql.DB, cb *StoreBreaker) (OrderRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	if cb == nil {
		return nil, errors.New("breaker must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &OrderRepo{
		db: conn,
		cb: cb,
	}, nil
}

func (r *OrderRepo) Save(ctx context.Context, o entities.Order) (saved entities.Order, err error) {
	itemsJSON, e := json.Marshal(o.Items)
	if e != nil {
		log.Printf("OrderRepo.Save[1]: %v", e)
		err = models.ErrServerError
		return
	}
	var row models.Order_db
	e = r.cb.Do(ctx, func() error {
		return r.db.QueryRowContext(ctx,
			`INSERT INTO orders (customer_name, phone_number, address, items, total, status)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING `+orderColumns,
			o.CustomerName, o.PhoneNumber, o.Address, string(itemsJSON), o.Total, entities.OrderPending,
		).Scan(scanOrder(&row)...)
	})
	if e != nil {
		log.Printf("OrderRepo.Save[2]: %v", e)
		err = storeError(e)
		return
	}
	var ok bool
	saved, ok = toOrder(row)
	if !ok {
		log.Printf("OrderRepo.Save[3]: store returned an incomplete row")
		err = models.ErrServerError
	}
	return
}

// GetAll lists every order, newest first. Read failures are logged
// and yield an empty list.
func (r *OrderRepo) GetAll(ctx context.Context) []entities.Order {
	orders, err := r.List(ctx)
	if err != nil {
		return []entities.Order{}
	}
	return orders
}

// List is GetAll for callers that must tell an empty table from a failed
// read.
func (r *OrderRepo) List(ctx context.Context) (orders []entities.Order, err error) {
	orders = []entities.Order{}
	e := r.cb.Do(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var row models.Order_db
			if err := rows.Scan(scanOrder(&row)...); err != nil {
				return err
			}
			o, ok := toOrder(row)
			if !ok {
				log.Printf("OrderRepo.List[1]: skipping malformed row %q", row.Id.String)
				continue
			}
			orders = append(orders, o)
		}
		return rows.Err()
	})
	if e != nil {
		log.Printf("OrderRepo.List[2]: %v", e)
		return []entities.Order{}, storeError(e)
	}
	return
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status string) bool {
	e := r.cb.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
		return ignoreInvalidId(err)
	})
	if e != nil {
		log.Printf("OrderRepo.UpdateStatus: %v", e)
		return false
	}
	return true
}

func (r *OrderRepo) Delete(ctx context.Context, id string) bool {
	e := r.cb.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
		return ignoreInvalidId(err)
	})
	if e != nil {
		log.Printf("OrderRepo.Delete: %v", e)
		return false
	}
	return true
}

func scanOrder(row *models.Order_db) []any {
	return []any{
		&row.Id, &row.CustomerName, &row.PhoneNumber, &row.Address, &row.Items,
		&row.Total, &row.Status, &row.CreatedAt,
	}
}

// toOrder rejects rows with missing columns or an items column that does
// not hold a list of line items.
func toOrder(row models.Order_db) (o entities.Order, ok bool) {
	required := []sql.NullString{row.Id, row.CustomerName, row.PhoneNumber, row.Address, row.Status}
	for _, col := range required {
		if !col.Valid {
			return
		}
	}
	if !row.Total.Valid || !row.CreatedAt.Valid {
		return
	}
	items, ok := decodeItems(row.Items)
	if !ok {
		return
	}
	o = entities.Order{
		Id:           row.Id.String,
		CustomerName: row.CustomerName.String,
		PhoneNumber:  row.PhoneNumber.String,
		Address:      row.Address.String,
		Items:        items,
		Total:        int(row.Total.Int64),
		Status:       row.Status.String,
		CreatedAt:    row.CreatedAt.Time,
	}
	return o, true
}

func decodeItems(data []byte) (items []entities.OrderItem, ok bool) {
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil, false
	}
	if !validItems(items) {
		return nil, false
	}
	return items, true
}

// validItems holds for line items with an id, a quantity of at least 1 and
// no repeated product.
func validItems(items []entities.OrderItem) bool {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.Id == "" || it.Quantity < 1 || seen[it.Id] {
			return false
		}
		seen[it.Id] = true
	}
	return true
}
