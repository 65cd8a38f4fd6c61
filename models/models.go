package models

import (
	"database/sql"
	"errors"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnautorized = errors.New("unautorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")
var ErrUnavailable = errors.New("store unavailable")
var ErrSubmitInProgress = errors.New("submission already in progress")
var ErrConfirmationRequired = errors.New("confirmation required")
var ErrTooManyRequests = errors.New("too many requests")

type Credentials struct {
	Password string `json:"password"`
	Username string `json:"username"`
}

// Scan targets for the bookings and orders tables. Nullable columns are
// scanned as sql.Null* so the converters can reject incomplete rows.
type Booking_db struct {
	Id                  sql.NullString
	CustomerName        sql.NullString
	PhoneNumber         sql.NullString
	ServiceType         sql.NullString
	EventDate           sql.NullString
	Location            sql.NullString
	SpecialInstructions sql.NullString
	Status              sql.NullString
	CreatedAt           sql.NullTime
}

type Order_db struct {
	Id           sql.NullString
	CustomerName sql.NullString
	PhoneNumber  sql.NullString
	Address      sql.NullString
	Items        []byte
	Total        sql.NullInt64
	Status       sql.NullString
	CreatedAt    sql.NullTime
}

type Admin_db struct {
	Id       int
	Username string
	Password string
}
