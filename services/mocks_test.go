package services

import (
	"context"
	"sync"
	"time"

	"flowerStore/entities"
	"flowerStore/models"
	"flowerStore/repository"
)

// in-memory stand-ins for the repositories

type memCartRepo struct {
	mu        sync.Mutex
	carts     map[string]entities.Cart
	wishlists map[string]entities.Wishlist
	setErr    error
	getErr    error
	sets      int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]entities.Cart{}, wishlists: map[string]entities.Wishlist{}}
}

func (m *memCartRepo) GetCart(ctx context.Context, id string) (entities.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if c, ok := m.carts[id]; ok {
		return c, nil
	}
	return entities.Cart{}, nil
}

func (m *memCartRepo) SetCart(ctx context.Context, id string, cart entities.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.carts[id] = cart
	return nil
}

func (m *memCartRepo) GetWishlist(ctx context.Context, id string) (entities.Wishlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if w, ok := m.wishlists[id]; ok {
		return w, nil
	}
	return entities.Wishlist{}, nil
}

func (m *memCartRepo) SetWishlist(ctx context.Context, id string, w entities.Wishlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.wishlists[id] = w
	return nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings []entities.Booking
	saveErr  error
	listErr  error
	failOps  bool
	block    chan struct{}
	deletes  int
}

func (m *memBookingRepo) Save(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return entities.Booking{}, m.saveErr
	}
	b.Id = "b" + string(rune('0'+len(m.bookings)+1))
	b.Status = entities.BookingPending
	b.CreatedAt = time.Now()
	m.bookings = append([]entities.Booking{b}, m.bookings...)
	return b, nil
}

func (m *memBookingRepo) List(ctx context.Context) ([]entities.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	res := make([]entities.Booking, len(m.bookings))
	copy(res, m.bookings)
	return res, nil
}

func (m *memBookingRepo) GetAll(ctx context.Context) []entities.Booking {
	res, err := m.List(ctx)
	if err != nil {
		return []entities.Booking{}
	}
	return res
}

func (m *memBookingRepo) UpdateStatus(ctx context.Context, id, status string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOps {
		return false
	}
	for i := range m.bookings {
		if m.bookings[i].Id == id {
			m.bookings[i].Status = status
		}
	}
	return true
}

func (m *memBookingRepo) Delete(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if m.failOps {
		return false
	}
	res := m.bookings[:0]
	for _, b := range m.bookings {
		if b.Id != id {
			res = append(res, b)
		}
	}
	m.bookings = res
	return true
}

type memOrderRepo struct {
	mu      sync.Mutex
	orders  []entities.Order
	saveErr error
	listErr error
	failOps bool
	deletes int
}

func (m *memOrderRepo) Save(ctx context.Context, o entities.Order) (entities.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return entities.Order{}, m.saveErr
	}
	o.Id = "o" + string(rune('0'+len(m.orders)+1))
	o.Status = entities.OrderPending
	o.CreatedAt = time.Now()
	m.orders = append([]entities.Order{o}, m.orders...)
	return o, nil
}

func (m *memOrderRepo) List(ctx context.Context) ([]entities.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	res := make([]entities.Order, len(m.orders))
	copy(res, m.orders)
	return res, nil
}

func (m *memOrderRepo) GetAll(ctx context.Context) []entities.Order {
	res, err := m.List(ctx)
	if err != nil {
		return []entities.Order{}
	}
	return res
}

func (m *memOrderRepo) UpdateStatus(ctx context.Context, id, status string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOps {
		return false
	}
	for i := range m.orders {
		if m.orders[i].Id == id {
			m.orders[i].Status = status
		}
	}
	return true
}

func (m *memOrderRepo) Delete(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if m.failOps {
		return false
	}
	res := m.orders[:0]
	for _, o := range m.orders {
		if o.Id != id {
			res = append(res, o)
		}
	}
	m.orders = res
	return true
}

type memAdminRepo struct {
	admins map[string]models.Admin_db
}

func (m *memAdminRepo) GetAdminByName(ctx context.Context, name string) (models.Admin_db, bool, error) {
	a, ok := m.admins[name]
	return a, ok, nil
}

func (m *memAdminRepo) EncryptPassword(p string) (string, error) {
	return "hashed:" + p, nil
}

func (m *memAdminRepo) VerifyPassword(hashed, sent string) bool {
	return hashed == "hashed:"+sent
}

func (m *memAdminRepo) AddAdmin(ctx context.Context, a models.Admin_db) (int, error) {
	if _, ok := m.admins[a.Username]; ok {
		return 0, models.ErrNotAllowed
	}
	a.Id = len(m.admins) + 1
	m.admins[a.Username] = a
	return a.Id, nil
}

func (m *memAdminRepo) UpdatePassword(ctx context.Context, username, hashed string) error {
	a := m.admins[username]
	a.Password = hashed
	m.admins[username] = a
	return nil
}

type memSessionRepo struct {
	sessions map[string]string
	next     int
}

func (m *memSessionRepo) CreateSession(ctx context.Context, adminId int, username string) (string, error) {
	m.next++
	id := "sess-" + string(rune('0'+m.next))
	m.sessions[id] = username
	return id, nil
}

func (m *memSessionRepo) CheckSession(ctx context.Context, id string) (bool, error) {
	_, ok := m.sessions[id]
	return ok, nil
}

func (m *memSessionRepo) DeleteSession(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *memSessionRepo) GetAdminSessionInfo(ctx context.Context, id string) (int, string, bool, error) {
	u, ok := m.sessions[id]
	return 1, u, ok, nil
}

var (
	_ repository.CartRepository    = (*memCartRepo)(nil)
	_ repository.BookingRepository = (*memBookingRepo)(nil)
	_ repository.OrderRepository   = (*memOrderRepo)(nil)
	_ repository.AdminRepository   = (*memAdminRepo)(nil)
	_ repository.SessionRepository = (*memSessionRepo)(nil)
)

var testWA = WhatsApp{Number: "+923214455667", Greeting: "Hi Umer & Umair Flowers,"}
