package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"flowerStore/entities"
	"flowerStore/models"
)

type BookingRepository interface {
	Save(ctx context.Context, b entities.Booking) (saved entities.Booking, err error)
	GetAll(ctx context.Context) []entities.Booking
	List(ctx context.Context) ([]entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, status string) bool
	Delete(ctx context.Context, id string) bool
}

type BookingRepo struct {
	db *sql.DB
	cb *StoreBreaker
}

const bookingColumns = `id, customer_name, phone_number, service_type, event_date::text, location, special_instructions, status, created_at`

func NewBookingRepository(conn *sql.DB, cb *StoreBreaker) (BookingRepository, error) {
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
	return &BookingRepo{
		db: conn,
		cb: cb,
	}, nil
}

// Save inserts a new booking. Status is always pending; id and created_at
// come from the store.
func (r *BookingRepo) Save(ctx context.Context, b entities.Booking) (saved entities.Booking, err error) {
	var row models.Booking_db
	var instructions sql.NullString
	if b.SpecialInstructions != "" {
		instructions = sql.NullString{String: b.SpecialInstructions, Valid: true}
	}
	e := r.cb.Do(ctx, func() error {
		return r.db.QueryRowContext(ctx,
			`INSERT INTO bookings (customer_name, phone_number, service_type, event_date, location, special_instructions, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING `+bookingColumns,
			b.CustomerName, b.PhoneNumber, b.ServiceType, b.Date, b.Location, instructions, entities.BookingPending,
		).Scan(scanBooking(&row)...)
	})
	if e != nil {
		log.Printf("BookingRepo.Save[1]: %v", e)
		err = storeError(e)
		return
	}
	var ok bool
	saved, ok = toBooking(row)
	if !ok {
		log.Printf("BookingRepo.Save[2]: store returned an incomplete row")
		err = models.ErrServerError
	}
	return
}

// GetAll lists every booking, newest first. Read failures are logged
// and yield an empty list.
func (r *BookingRepo) GetAll(ctx context.Context) []entities.Booking {
	bookings, err := r.List(ctx)
	if err != nil {
		return []entities.Booking{}
	}
	return bookings
}

// List is GetAll for callers that must tell an empty table from a failed
// read.
func (r *BookingRepo) List(ctx context.Context) (bookings []entities.Booking, err error) {
	bookings = []entities.Booking{}
	e := r.cb.Do(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var row models.Booking_db
			if err := rows.Scan(scanBooking(&row)...); err != nil {
				return err
			}
			b, ok := toBooking(row)
			if !ok {
				log.Printf("BookingRepo.List[1]: skipping malformed row %q", row.Id.String)
				continue
			}
			bookings = append(bookings, b)
		}
		return rows.Err()
	})
	if e != nil {
		log.Printf("BookingRepo.List[2]: %v", e)
		return []entities.Booking{}, storeError(e)
	}
	return
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, status string) bool {
	e := r.cb.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
		return ignoreInvalidId(err)
	})
	if e != nil {
		log.Printf("BookingRepo.UpdateStatus: %v", e)
		return false
	}
	return true
}

func (r *BookingRepo) Delete(ctx context.Context, id string) bool {
	e := r.cb.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
		return ignoreInvalidId(err)
	})
	if e != nil {
		log.Printf("BookingRepo.Delete: %v", e)
		return false
	}
	return true
}

func scanBooking(row *models.Booking_db) []any {
	return []any{
		&row.Id, &row.CustomerName, &row.PhoneNumber, &row.ServiceType, &row.EventDate,
		&row.Location, &row.SpecialInstructions, &row.Status, &row.CreatedAt,
	}
}

// toBooking rejects rows that miss any required column.
func toBooking(row models.Booking_db) (b entities.Booking, ok bool) {
	required := []sql.NullString{row.Id, row.CustomerName, row.PhoneNumber, row.ServiceType, row.EventDate, row.Location, row.Status}
	for _, col := range required {
		if !col.Valid {
			return
		}
	}
	if !row.CreatedAt.Valid {
		return
	}
	b = entities.Booking{
		Id:                  row.Id.String,
		CustomerName:        row.CustomerName.String,
		PhoneNumber:         row.PhoneNumber.String,
		ServiceType:         row.ServiceType.String,
		Date:                row.EventDate.String,
		Location:            row.Location.String,
		SpecialInstructions: row.SpecialInstructions.String,
		Status:              row.Status.String,
		CreatedAt:           row.CreatedAt.Time,
	}
	return b, true
}
