package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"flowerStore/entities"
	"flowerStore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	svc AdminService
	br  *memBookingRepo
	or  *memOrderRepo
	sr  *memSessionRepo
}

func newAdminFixture(t *testing.T) adminFixture {
	ar := &memAdminRepo{admins: map[string]models.Admin_db{}}
	f := adminFixture{
		br: &memBookingRepo{},
		or: &memOrderRepo{},
		sr: &memSessionRepo{sessions: map[string]string{}},
	}
	f.svc = NewAdminService(AdminParams{
		AdminRepo:   ar,
		SessionRepo: f.sr,
		BookingRepo: f.br,
		OrderRepo:   f.or,
	})
	_, err := f.svc.CreateAdmin(context.Background(), models.Credentials{Password: "s3cret"})
	require.NoError(t, err)
	return f
}

func (f adminFixture) seed(t *testing.T) (entities.Booking, entities.Order) {
	ctx := context.Background()
	b, err := f.br.Save(ctx, entities.Booking{CustomerName: "Sara"})
	require.NoError(t, err)
	o, err := f.or.Save(ctx, entities.Order{CustomerName: "Ahmed", Total: 4500})
	require.NoError(t, err)
	return b, o
}

func TestAdminService_LoginLoadsDashboard(t *testing.T) {
	f := newAdminFixture(t)
	f.seed(t)

	sessionId, dash, err := f.svc.Login(context.Background(), models.Credentials{Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, sessionId)
	assert.Len(t, dash.Bookings, 1)
	assert.Len(t, dash.Orders, 1)

	ok, err := f.svc.CheckAuth(context.Background(), sessionId)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdminService_LoginRejected(t *testing.T) {
	f := newAdminFixture(t)

	tests := []models.Credentials{
		{Password: "umair123"},
		{Password: ""},
		{Username: "ghost", Password: "s3cret"},
	}
	for _, creds := range tests {
		sessionId, _, err := f.svc.Login(context.Background(), creds)
		assert.ErrorIs(t, err, models.ErrUnautorized)
		assert.Empty(t, sessionId)
	}
	assert.Empty(t, f.sr.sessions)
}

func TestAdminService_Logout(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	sessionId, _, err := f.svc.Login(ctx, models.Credentials{Password: "s3cret"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(ctx, sessionId))

	ok, err := f.svc.CheckAuth(ctx, sessionId)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminService_UpdateOrderStatusRefreshes(t *testing.T) {
	f := newAdminFixture(t)
	_, o := f.seed(t)

	res, err := f.svc.UpdateOrderStatus(context.Background(), o.Id, entities.OrderShipped)
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.NotNil(t, res.Dashboard)
	require.Len(t, res.Dashboard.Orders, 1)
	assert.Equal(t, entities.OrderShipped, res.Dashboard.Orders[0].Status)
}

func TestAdminService_UpdateStatusRejectsUnknownValues(t *testing.T) {
	f := newAdminFixture(t)
	b, o := f.seed(t)
	ctx := context.Background()

	_, err := f.svc.UpdateBookingStatus(ctx, b.Id, entities.OrderShipped)
	assert.ErrorIs(t, err, models.ErrBadRequest)
	_, err = f.svc.UpdateOrderStatus(ctx, o.Id, entities.BookingConfirmed)
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestAdminService_FailedWriteSkipsRefresh(t *testing.T) {
	f := newAdminFixture(t)
	b, _ := f.seed(t)
	f.br.failOps = true

	res, err := f.svc.UpdateBookingStatus(context.Background(), b.Id, entities.BookingConfirmed)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Nil(t, res.Dashboard)
}

func TestAdminService_DeleteNeedsConfirmation(t *testing.T) {
	f := newAdminFixture(t)
	b, o := f.seed(t)
	ctx := context.Background()

	_, err := f.svc.DeleteBooking(ctx, b.Id, false)
	assert.ErrorIs(t, err, models.ErrConfirmationRequired)
	_, err = f.svc.DeleteOrder(ctx, o.Id, false)
	assert.ErrorIs(t, err, models.ErrConfirmationRequired)
	assert.Zero(t, f.br.deletes)
	assert.Zero(t, f.or.deletes)

	res, err := f.svc.DeleteBooking(ctx, b.Id, true)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Dashboard.Bookings)
	assert.Len(t, res.Dashboard.Orders, 1)
}

func TestAdminService_Stats(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	f.seed(t)
	_, o2 := f.seed(t)
	f.or.UpdateStatus(ctx, o2.Id, entities.OrderDelivered)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 2, stats.PendingBookings)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 4500, stats.TotalRevenue)
}

func TestAdminService_Export(t *testing.T) {
	f := newAdminFixture(t)
	f.seed(t)

	backup, err := f.svc.Export(context.Background())
	require.NoError(t, err)
	assert.Len(t, backup.Bookings, 1)
	assert.Len(t, backup.Orders, 1)
	assert.False(t, backup.ExportDate.IsZero())
}

func TestAdminService_ExportAndStatsFailWithStore(t *testing.T) {
	tests := []struct {
		name  string
		fail func(f adminFixture)
	}{
		{"bookings", func(f adminFixture) { f.br.listErr = models.ErrUnavailable }},
		{"orders", func(f adminFixture) { f.or.listErr = models.ErrUnavailable }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdminFixture(t)
			f.seed(t)
			tt.fail(f)
			ctx := context.Background()

			backup, err := f.svc.Export(ctx)
			assert.ErrorIs(t, err, models.ErrUnavailable)
			assert.Empty(t, backup.Bookings)
			assert.Empty(t, backup.Orders)

			_, err = f.svc.Stats(ctx)
			assert.ErrorIs(t, err, models.ErrUnavailable)
		})
	}
}

func TestAdminService_CreateAdminDuplicate(t *testing.T) {
	f := newAdminFixture(t)

	_, err := f.svc.CreateAdmin(context.Background(), models.Credentials{Password: "other"})
	assert.ErrorIs(t, err, models.ErrNotAllowed)
}

func TestAdminService_ChangePassword(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ChangePassword(ctx, models.Credentials{Password: "n3w"}))

	_, _, err := f.svc.Login(ctx, models.Credentials{Password: "s3cret"})
	assert.ErrorIs(t, err, models.ErrUnautorized)
	_, _, err = f.svc.Login(ctx, models.Credentials{Password: "n3w"})
	assert.NoError(t, err)
}

func TestAdminService_ChangePasswordRequiresPassword(t *testing.T) {
	f := newAdminFixture(t)

	err := f.svc.ChangePassword(context.Background(), models.Credentials{})
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

type gatedBookingRepo struct {
	*memBookingRepo
	gate  chan struct{}
	loads atomic.Int32
}

func (g *gatedBookingRepo) GetAll(ctx context.Context) []entities.Booking {
	g.loads.Add(1)
	<-g.gate
	if ctx.Err() != nil {
		return []entities.Booking{}
	}
	return g.memBookingRepo.GetAll(ctx)
}

func TestAdminService_ConcurrentDashboardsShareOneLoad(t *testing.T) {
	br := &gatedBookingRepo{memBookingRepo: &memBookingRepo{}, gate: make(chan struct{})}
	svc := NewAdminService(AdminParams{BookingRepo: br, OrderRepo: &memOrderRepo{}})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Dashboard(context.Background())
		}()
	}
	require.Eventually(t, func() bool { return br.loads.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), br.loads.Load())

	close(br.gate)
	wg.Wait()
}

func TestAdminService_SharedDashboardSurvivesFirstCallerLeaving(t *testing.T) {
	br := &gatedBookingRepo{memBookingRepo: &memBookingRepo{}, gate: make(chan struct{})}
	_, err := br.Save(context.Background(), entities.Booking{CustomerName: "Sara"})
	require.NoError(t, err)
	svc := NewAdminService(AdminParams{BookingRepo: br, OrderRepo: &memOrderRepo{}})

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan entities.Dashboard, 1)
	go func() {
		first <- svc.Dashboard(ctx)
	}()
	require.Eventually(t, func() bool { return br.loads.Load() == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan entities.Dashboard, 1)
	go func() {
		second <- svc.Dashboard(context.Background())
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	close(br.gate)

	dash := <-second
	assert.Len(t, dash.Bookings, 1)
	<-first
}
