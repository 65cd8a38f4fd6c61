package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"flowerStore/entities"
	"flowerStore/models"
	"flowerStore/services"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const (
	cartCookie  = "cartSessionId"
	adminCookie = "adminSessionId"
)

type Handler struct {
	cs  services.CartService
	cat services.CatalogService
	bs  services.BookingService
	ors services.CheckoutService
	as  services.AdminService

	validate     *validator.Validate
	limiter      *LoginLimiter
	deliveryFee  int
	cookieTTL    time.Duration
	secureCookie bool
}

type HandlerParams struct {
	CrtService      services.CartService
	CatService      services.CatalogService
	BookService     services.BookingService
	CheckoutService services.CheckoutService
	AdmService      services.AdminService

	LoginLimiter *LoginLimiter
	DeliveryFee  int
	CookieTTL    time.Duration
	SecureCookie bool
}

func NewHandler(params HandlerParams) *Handler {
	if params.LoginLimiter == nil {
		params.LoginLimiter = NewLoginLimiter(5, time.Minute)
	}
	if params.CookieTTL == 0 {
		params.CookieTTL = 30 * 24 * time.Hour
	}
	return &Handler{
		cs:           params.CrtService,
		cat:          params.CatService,
		bs:           params.BookService,
		ors:          params.CheckoutService,
		as:           params.AdmService,
		validate:     validator.New(),
		limiter:      params.LoginLimiter,
		deliveryFee:  params.DeliveryFee,
		cookieTTL:    params.CookieTTL,
		secureCookie: params.SecureCookie,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// catalog

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	prods, err := h.cat.GetProducts(r.URL.Query().Get("category"))
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prods)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	prod, err := h.cat.GetProductById(mux.Vars(r)["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prod)
}

func (h *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cat.GetServices())
}

func (h *Handler) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cat.GetTestimonials())
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartSessionId, ok := h.cartSession(w, r, false)
	if !ok {
		writeJSON(w, http.StatusOK, entities.CartResponse{Items: entities.Cart{}})
		return
	}
	cart, err := h.cs.GetCart(r.Context(), cartSessionId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	req := entities.CartRequest{}
	if !h.decode(w, r, &req) {
		return
	}
	cartSessionId, _ := h.cartSession(w, r, true)
	cart, err := h.cs.AddCartItem(r.Context(), cartSessionId, req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	req := entities.QuantityRequest{}
	if !h.decode(w, r, &req) {
		return
	}
	cartSessionId, ok := h.cartSession(w, r, false)
	if !ok {
		writeJSON(w, http.StatusOK, entities.CartResponse{Items: entities.Cart{}})
		return
	}
	cart, err := h.cs.UpdateQuantity(r.Context(), cartSessionId, mux.Vars(r)["id"], req.Delta)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) CheckoutSummary(w http.ResponseWriter, r *http.Request) {
	cartSessionId, ok := h.cartSession(w, r, false)
	if !ok {
		writeJSON(w, http.StatusOK, entities.CheckoutSummary{Items: entities.Cart{}, DeliveryFee: h.deliveryFee, Total: h.deliveryFee})
		return
	}
	summary, err := h.cs.CheckoutSummary(r.Context(), cartSessionId, h.deliveryFee)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// wishlist

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	cartSessionId, ok := h.cartSession(w, r, false)
	if !ok {
		writeJSON(w, http.StatusOK, entities.WishlistResponse{Items: entities.Wishlist{}})
		return
	}
	wl, err := h.cs.GetWishlist(r.Context(), cartSessionId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wl)
}

func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	req := entities.CartRequest{}
	if !h.decode(w, r, &req) {
		return
	}
	cartSessionId, _ := h.cartSession(w, r, true)
	wl, err := h.cs.ToggleWishlist(r.Context(), cartSessionId, req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wl)
}

func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	cartSessionId, ok := h.cartSession(w, r, false)
	if !ok {
		writeJSON(w, http.StatusOK, entities.WishlistResponse{Items: entities.Wishlist{}})
		return
	}
	wl, err := h.cs.RemoveFromWishlist(r.Context(), cartSessionId, mux.Vars(r)["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wl)
}

func (h *Handler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	cartSessionId, _ := h.cartSession(w, r, true)
	cart, wl, err := h.cs.MoveToCart(r.Context(), cartSessionId, mux.Vars(r)["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Cart     entities.CartResponse     `json:"cart"`
		Wishlist entities.WishlistResponse `json:"wishlist"`
	}{cart, wl})
}

// forms

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	form := entities.BookingForm{}
	if !h.decode(w, r, &form) {
		return
	}
	sessionId, _ := h.cartSession(w, r, true)
	res, err := h.bs.Submit(r.Context(), sessionId, form)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, submitStatusCode(res.Status), res)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	form := entities.CheckoutForm{}
	if !h.decode(w, r, &form) {
		return
	}
	cartSessionId, ok := h.cartSession(w, r, false)
	if !ok {
		http.Error(w, "cart is empty", http.StatusBadRequest)
		return
	}
	res, err := h.ors.Submit(r.Context(), cartSessionId, form)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, submitStatusCode(res.Status), res)
}

func submitStatusCode(s entities.SubmitStatus) int {
	switch s {
	case entities.SubmitSucceeded:
		return http.StatusCreated
	case entities.SubmitErrored:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// admin

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	if !h.decode(w, r, &creds) {
		return
	}
	sessionId, dash, err := h.as.Login(r.Context(), creds)
	if err != nil {
		if errors.Is(err, models.ErrUnautorized) {
			http.Error(w, "Incorrect Password", http.StatusUnauthorized)
			return
		}
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookie,
		Value:    sessionId,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, dash)
}

func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie(adminCookie)
	if err := h.as.Logout(r.Context(), c.Value); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    adminCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.as.Dashboard(r.Context()))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.as.Stats(r.Context())
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	backup, err := h.as.Export(r.Context())
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="florist-backup-%s.json"`, backup.ExportDate.Format("2006-01-02")))
	writeJSON(w, http.StatusOK, backup)
}

func (h *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	req := entities.StatusRequest{}
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.as.UpdateBookingStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	req := entities.StatusRequest{}
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.as.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	res, err := h.as.DeleteBooking(r.Context(), mux.Vars(r)["id"], confirmed(r))
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.as.DeleteOrder(r.Context(), mux.Vars(r)["id"], confirmed(r))
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

// middleware

func (h *Handler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie(adminCookie)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, err := h.as.CheckAuth(r.Context(), sessionId.Value)
		if !ok {
			if err != nil {
				log.Printf("AdminAuthMiddleware: %v", err)
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// helpers

func (h *Handler) cartSession(w http.ResponseWriter, r *http.Request, create bool) (cartSessionId string, ok bool) {
	c, err := r.Cookie(cartCookie)
	if err == nil && c.Value != "" {
		return c.Value, true
	}
	if !create {
		return
	}
	cartSessionId = h.cs.CreateCartSession()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookie,
		Value:    cartSessionId,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return cartSessionId, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			http.Error(w, fmt.Sprintf("invalid field %s", verrs[0].Field()), http.StatusBadRequest)
			return false
		}
		log.Printf("Validate err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonData)
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrServerError):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, models.ErrUnautorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	case errors.Is(err, models.ErrUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, models.ErrSubmitInProgress):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrConfirmationRequired):
		http.Error(w, err.Error(), http.StatusPreconditionRequired)
	case errors.Is(err, models.ErrTooManyRequests):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		log.Printf("WriteErrorResponse: unmapped error: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
