package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func NewRouter(ha *Handler) http.Handler {
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)

	router.HandleFunc("/health", ha.Health).Methods("GET")

	router.HandleFunc("/products", ha.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", ha.GetProduct).Methods("GET")
	router.HandleFunc("/services", ha.GetServices).Methods("GET")
	router.HandleFunc("/testimonials", ha.GetTestimonials).Methods("GET")

	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	router.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart/{id}", ha.UpdateCartItem).Methods("PATCH")

	router.HandleFunc("/wishlist", ha.GetWishlist).Methods("GET")
	router.HandleFunc("/wishlist", ha.ToggleWishlist).Methods("POST")
	router.HandleFunc("/wishlist/{id}", ha.RemoveFromWishlist).Methods("DELETE")
	router.HandleFunc("/wishlist/{id}/move", ha.MoveToCart).Methods("POST")

	router.HandleFunc("/bookings", ha.CreateBooking).Methods("POST")
	router.HandleFunc("/checkout/summary", ha.CheckoutSummary).Methods("GET")
	router.HandleFunc("/checkout", ha.Checkout).Methods("POST")

	router.Handle("/admin/login", ha.limiter.Middleware(http.HandlerFunc(ha.AdminLogin))).Methods("POST")

	subAdmin := router.PathPrefix("/admin").Subrouter()
	subAdmin.Use(ha.AdminAuthMiddleware)
	subAdmin.HandleFunc("/logout", ha.AdminLogout).Methods("POST")
	subAdmin.HandleFunc("/dashboard", ha.Dashboard).Methods("GET")
	subAdmin.HandleFunc("/stats", ha.Stats).Methods("GET")
	subAdmin.HandleFunc("/export", ha.Export).Methods("GET")
	subAdmin.HandleFunc("/bookings/{id}/status", ha.UpdateBookingStatus).Methods("POST")
	subAdmin.HandleFunc("/bookings/{id}", ha.DeleteBooking).Methods("DELETE")
	subAdmin.HandleFunc("/orders/{id}/status", ha.UpdateOrderStatus).Methods("POST")
	subAdmin.HandleFunc("/orders/{id}", ha.DeleteOrder).Methods("DELETE")

	return otelhttp.NewHandler(router, "flowerStore")
}
