package services

import (
	"context"
	"log"
	"sync"
	"time"

	"flowerStore/entities"
	"flowerStore/models"
	"flowerStore/repository"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type AdminService struct {
	ar              repository.AdminRepository
	sr              repository.SessionRepository
	br              repository.BookingRepository
	or              repository.OrderRepository
	defaultUsername string
	sfg             *singleflight.Group
}

type AdminParams struct {
	AdminRepo       repository.AdminRepository
	SessionRepo     repository.SessionRepository
	BookingRepo     repository.BookingRepository
	OrderRepo       repository.OrderRepository
	DefaultUsername string
}

func NewAdminService(p AdminParams) AdminService {
	if p.DefaultUsername == "" {
		p.DefaultUsername = "admin"
	}
	return AdminService{
		ar:              p.AdminRepo,
		sr:              p.SessionRepo,
		br:              p.BookingRepo,
		or:              p.OrderRepo,
		defaultUsername: p.DefaultUsername,
		sfg:             &singleflight.Group{},
	}
}

// Login checks the credential and opens an admin session. The dashboard is
// loaded as part of a successful login.
func (as *AdminService) Login(ctx context.Context, creds models.Credentials) (sessionId string, dash entities.Dashboard, err error) {
	if creds.Username == "" {
		creds.Username = as.defaultUsername
	}
	aModel, ex, err := as.ar.GetAdminByName(ctx, creds.Username)
	if err != nil {
		return
	}
	if !ex || !as.ar.VerifyPassword(aModel.Password, creds.Password) {
		log.Printf("Login: rejected credential for %q", creds.Username)
		err = models.ErrUnautorized
		return
	}
	sessionId, err = as.sr.CreateSession(ctx, aModel.Id, aModel.Username)
	if err != nil {
		return
	}
	dash = as.Dashboard(ctx)
	return
}

func (as *AdminService) Logout(ctx context.Context, sessionId string) (err error) {
	err = as.sr.DeleteSession(ctx, sessionId)
	return
}

func (as *AdminService) CheckAuth(ctx context.Context, sessionId string) (bool, error) {
	return as.sr.CheckSession(ctx, sessionId)
}

func (as *AdminService) CreateAdmin(ctx context.Context, creds models.Credentials) (adminId int, err error) {
	if creds.Username == "" {
		creds.Username = as.defaultUsername
	}
	if creds.Password == "" {
		err = models.ErrBadRequest
		return
	}
	hashed, err := as.ar.EncryptPassword(creds.Password)
	if err != nil {
		return
	}
	adminId, err = as.ar.AddAdmin(ctx, models.Admin_db{Username: creds.Username, Password: hashed})
	return
}

func (as *AdminService) ChangePassword(ctx context.Context, creds models.Credentials) (err error) {
	if creds.Username == "" {
		creds.Username = as.defaultUsername
	}
	if creds.Password == "" {
		err = models.ErrBadRequest
		return
	}
	_, ex, err := as.ar.GetAdminByName(ctx, creds.Username)
	if err != nil {
		return
	}
	if !ex {
		err = models.ErrNotFoundError
		return
	}
	hashed, err := as.ar.EncryptPassword(creds.Password)
	if err != nil {
		return
	}
	err = as.ar.UpdatePassword(ctx, creds.Username, hashed)
	return
}

// Dashboard reads both tables in full. Concurrent readers share one load,
// which outlives any single reader giving up.
func (as *AdminService) Dashboard(ctx context.Context) entities.Dashboard {
	v, _, _ := as.sfg.Do("dashboard", func() (any, error) {
		return as.loadDashboard(context.WithoutCancel(ctx)), nil
	})
	return v.(entities.Dashboard)
}

// listAll is the strict form of Dashboard: a store failure is returned
// instead of reading as an empty table.
func (as *AdminService) listAll(ctx context.Context) (entities.Dashboard, error) {
	v, err, _ := as.sfg.Do("list", func() (any, error) {
		var dash entities.Dashboard
		g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
		g.Go(func() (err error) {
			dash.Bookings, err = as.br.List(gctx)
			return
		})
		g.Go(func() (err error) {
			dash.Orders, err = as.or.List(gctx)
			return
		})
		if err := g.Wait(); err != nil {
			log.Printf("AdminService.listAll: %v", err)
			return entities.Dashboard{}, err
		}
		return dash, nil
	})
	if err != nil {
		return entities.Dashboard{}, err
	}
	return v.(entities.Dashboard), nil
}

func (as *AdminService) loadDashboard(ctx context.Context) (dash entities.Dashboard) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		dash.Bookings = as.br.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		dash.Orders = as.or.GetAll(ctx)
	}()
	wg.Wait()
	return
}

func (as *AdminService) UpdateBookingStatus(ctx context.Context, id string, status string) (res entities.AdminActionResult, err error) {
	if !entities.ValidBookingStatus(status) {
		err = models.ErrBadRequest
		return
	}
	return as.afterWrite(ctx, as.br.UpdateStatus(ctx, id, status)), nil
}

func (as *AdminService) UpdateOrderStatus(ctx context.Context, id string, status string) (res entities.AdminActionResult, err error) {
	if !entities.ValidOrderStatus(status) {
		err = models.ErrBadRequest
		return
	}
	return as.afterWrite(ctx, as.or.UpdateStatus(ctx, id, status)), nil
}

func (as *AdminService) DeleteBooking(ctx context.Context, id string, confirmed bool) (res entities.AdminActionResult, err error) {
	if !confirmed {
		err = models.ErrConfirmationRequired
		return
	}
	return as.afterWrite(ctx, as.br.Delete(ctx, id)), nil
}

func (as *AdminService) DeleteOrder(ctx context.Context, id string, confirmed bool) (res entities.AdminActionResult, err error) {
	if !confirmed {
		err = models.ErrConfirmationRequired
		return
	}
	return as.afterWrite(ctx, as.or.Delete(ctx, id)), nil
}

func (as *AdminService) afterWrite(ctx context.Context, success bool) (res entities.AdminActionResult) {
	res.Success = success
	if success {
		dash := as.loadDashboard(ctx)
		res.Dashboard = &dash
	}
	return
}

func (as *AdminService) Stats(ctx context.Context) (stats entities.Stats, err error) {
	dash, err := as.listAll(ctx)
	if err != nil {
		return
	}
	stats.TotalBookings = len(dash.Bookings)
	stats.TotalOrders = len(dash.Orders)
	for _, b := range dash.Bookings {
		if b.Status == entities.BookingPending {
			stats.PendingBookings++
		}
	}
	for _, o := range dash.Orders {
		if o.Status == entities.OrderPending {
			stats.PendingOrders++
		}
		if o.Status == entities.OrderDelivered {
			stats.TotalRevenue += o.Total
		}
	}
	return
}

func (as *AdminService) Export(ctx context.Context) (backup entities.Backup, err error) {
	dash, err := as.listAll(ctx)
	if err != nil {
		return
	}
	backup = entities.Backup{
		Bookings:   dash.Bookings,
		Orders:     dash.Orders,
		ExportDate: time.Now().UTC(),
	}
	return
}
