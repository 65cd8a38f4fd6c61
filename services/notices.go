package services

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	NoticeBookingSucceeded = "Thank you! Your booking request has been received. Our team will contact you on WhatsApp shortly."
	NoticeBookingFailed    = "There was an issue processing your booking. Please try again or contact us via WhatsApp."
	NoticeBookingErrored   = "Something went wrong. Please check your connection."
	NoticeOrderSucceeded   = "Order Placed Successfully! We will call you to confirm your delivery in Lahore."
	NoticeOrderFailed      = "Failed to place order. Please try again."
	NoticeOrderErrored     = "Error connecting to backend."
)

// WhatsApp builds click-to-chat links for the shop's number.
type WhatsApp struct {
	Number   string
	Greeting string
}

func (w WhatsApp) Link(message string) string {
	if message == "" {
		message = w.Greeting
	}
	num := strings.TrimPrefix(strings.ReplaceAll(w.Number, " ", ""), "+")
	return fmt.Sprintf("https://wa.me/%s?text=%s", num, url.QueryEscape(message))
}

func (w WhatsApp) BookingLink(ref, service, date string) string {
	return w.Link(fmt.Sprintf("%s Booking %s: %s on %s.", w.Greeting, ref, service, date))
}

func (w WhatsApp) OrderLink(ref string, total int) string {
	return w.Link(fmt.Sprintf("%s Order %s: Rs. %d. Sharing my payment receipt.", w.Greeting, ref, total))
}
