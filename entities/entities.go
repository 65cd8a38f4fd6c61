package entities

import (
	"time"
)

const (
	CategoryBouquet    = "bouquet"
	CategoryGift       = "gift"
	CategoryDecoration = "decoration"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
)

const (
	OrderPending   = "pending"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

var BookingStatuses = []string{BookingPending, BookingConfirmed, BookingCompleted}
var OrderStatuses = []string{OrderPending, OrderShipped, OrderDelivered, OrderCancelled}

type Product struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

type OrderItem struct {
	Product
	Quantity int `json:"quantity"`
}

type Service struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceStart  string `json:"priceStart"`
	Image       string `json:"image"`
}

type Testimonial struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Text        string `json:"text"`
	ServiceType string `json:"serviceType"`
	Rating      int    `json:"rating"`
}

type Booking struct {
	Id                  string    `json:"id"`
	CustomerName        string    `json:"customerName"`
	PhoneNumber         string    `json:"phoneNumber"`
	ServiceType         string    `json:"serviceType"`
	Date                string    `json:"date"`
	Location            string    `json:"location"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
}

type Order struct {
	Id           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	PhoneNumber  string      `json:"phoneNumber"`
	Address      string      `json:"address"`
	Items        []OrderItem `json:"items"`
	Total        int         `json:"total"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// requests

type BookingForm struct {
	CustomerName        string `json:"customerName" validate:"required"`
	PhoneNumber         string `json:"phoneNumber" validate:"required"`
	ServiceType         string `json:"serviceType" validate:"required"`
	Date                string `json:"date" validate:"required,datetime=2006-01-02"`
	Location            string `json:"location" validate:"required"`
	SpecialInstructions string `json:"specialInstructions"`
}

type CheckoutForm struct {
	CustomerName string `json:"customerName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber" validate:"required"`
	Address      string `json:"address" validate:"required"`
}

type CartRequest struct {
	ProductId string `json:"productId" validate:"required"`
}

type QuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// responses

type CartResponse struct {
	Items    Cart `json:"items"`
	Subtotal int  `json:"subtotal"`
	Count    int  `json:"count"`
	OpenCart bool `json:"openCart,omitempty"`
}

type WishlistResponse struct {
	Items Wishlist `json:"items"`
}

type CheckoutSummary struct {
	Items       Cart `json:"items"`
	Subtotal    int  `json:"subtotal"`
	DeliveryFee int  `json:"deliveryFee"`
	Total       int  `json:"total"`
}

type Dashboard struct {
	Bookings []Booking `json:"bookings"`
	Orders   []Order   `json:"orders"`
}

// AdminActionResult carries a fresh dashboard only when the write succeeded.
type AdminActionResult struct {
	Success   bool       `json:"success"`
	Dashboard *Dashboard `json:"dashboard,omitempty"`
}

type Stats struct {
	TotalBookings   int `json:"totalBookings"`
	PendingBookings int `json:"pendingBookings"`
	TotalOrders     int `json:"totalOrders"`
	PendingOrders   int `json:"pendingOrders"`
	TotalRevenue    int `json:"totalRevenue"`
}

type Backup struct {
	Bookings   []Booking `json:"bookings"`
	Orders     []Order   `json:"orders"`
	ExportDate time.Time `json:"exportDate"`
}

type SubmitStatus string

const (
	SubmitSucceeded SubmitStatus = "succeeded"
	SubmitFailed    SubmitStatus = "failed"
	SubmitErrored   SubmitStatus = "error"
)

// SubmitResult is what a form controller reports back after one submission.
type SubmitResult struct {
	Status          SubmitStatus `json:"status"`
	Booking         *Booking     `json:"booking,omitempty"`
	Order           *Order       `json:"order,omitempty"`
	Notice          string       `json:"notice"`
	ConfirmationURL string       `json:"confirmationUrl,omitempty"`
}

func ValidBookingStatus(status string) bool {
	for _, s := range BookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
