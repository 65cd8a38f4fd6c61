package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowerStore/config"
	"flowerStore/handlers"
	"flowerStore/repository"
	"flowerStore/services"

	"github.com/spf13/cobra"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := &stores{}
	defer st.Close()

	if st.db, err = openDB(ctx, cfg); err != nil {
		return err
	}
	if !skipMigrations {
		if err := repository.RunMigrations(st.db); err != nil {
			return err
		}
	}
	if st.rdb, err = openRedis(ctx, cfg); err != nil {
		return err
	}

	ha, err := buildHandler(ctx, cfg, st)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handlers.NewRouter(ha),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s...", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("shutting down...")
	shutdownCtx, cncl := context.WithTimeout(context.Background(), 10*time.Second)
	defer cncl()
	return srv.Shutdown(shutdownCtx)
}

func buildHandler(ctx context.Context, cfg *config.Config, st *stores) (*handlers.Handler, error) {
	cb := newBreaker(cfg)

	pR := repository.NewProductRepository()
	cartR, err := newSlotRepository(ctx, cfg, st)
	if err != nil {
		return nil, err
	}
	sR, err := repository.NewSessionRepository(ctx, st.rdb, cfg.Session.TTL)
	if err != nil {
		return nil, err
	}
	bR, err := repository.NewBookingRepository(st.db, cb)
	if err != nil {
		return nil, err
	}
	oR, err := repository.NewOrderRepository(st.db, cb)
	if err != nil {
		return nil, err
	}
	aR, err := repository.NewAdminRepository(st.db, cb)
	if err != nil {
		return nil, err
	}

	guard := services.NewFormGuard()
	wa := services.WhatsApp{Number: cfg.Shop.WhatsAppNumber, Greeting: cfg.Shop.Greeting}
	catalog := services.NewCatalogService(pR)

	hp := handlers.HandlerParams{
		CrtService:      services.NewCartService(pR, cartR),
		CatService:      catalog,
		BookService:     services.NewBookingService(bR, guard, wa),
		CheckoutService: services.NewCheckoutService(catalog, cartR, oR, guard, wa),
		AdmService: services.NewAdminService(services.AdminParams{
			AdminRepo:       aR,
			SessionRepo:     sR,
			BookingRepo:     bR,
			OrderRepo:       oR,
			DefaultUsername: cfg.Admin.Username,
		}),
		LoginLimiter: handlers.NewLoginLimiter(cfg.Admin.LoginBurst, cfg.Admin.LoginInterval),
		DeliveryFee:  cfg.Shop.DeliveryFee,
		CookieTTL:    cfg.Cookie.TTL,
		SecureCookie: cfg.Cookie.Secure,
	}
	return handlers.NewHandler(hp), nil
}
