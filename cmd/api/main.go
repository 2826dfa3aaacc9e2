package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petcare-tracker/internal/adapters/capabilities/plansfeatures"
	"petcare-tracker/internal/adapters/notify/cronsched"
	"petcare-tracker/internal/adapters/photos/localfs"
	"petcare-tracker/internal/adapters/realtime"
	mem "petcare-tracker/internal/adapters/storage/memory"
	"petcare-tracker/internal/adapters/storage/postgres"
	"petcare-tracker/internal/adapters/storage/sqlite"
	"petcare-tracker/internal/adapters/storage/sqlstore"
	"petcare-tracker/internal/config"
	"petcare-tracker/internal/domain/entitlements"
	"petcare-tracker/internal/domain/tracker"
	"petcare-tracker/internal/platform/logger"
	"petcare-tracker/internal/router"

	"github.com/jmoiron/sqlx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", logger.Fields{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, App: cfg.AppName})
	if err := run(cfg, log); err != nil {
		log.Error("startup failed", logger.Fields{"err": err})
		os.Exit(1)
	}
}

// run arma y sirve la app. Devuelve error en lugar de salir para que los
// defers (DB, scheduler, señales) corran siempre.
func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, closeDB, err := openStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("storage init (%s): %w", cfg.Storage, err)
	}
	defer closeDB()

	// Compras: sin PLANS_* configurado el resolver responde false (o true con ALLOW_ALL).
	plansClient, err := plansfeatures.NewClient(plansfeatures.Config{
		BaseURL: cfg.Plans.BaseURL,
		APIKey:  cfg.Plans.APIKey,
		Timeout: cfg.Plans.Timeout,
	})
	if err != nil {
		return fmt.Errorf("plans client init: %w", err)
	}
	ent := entitlements.NewService(
		plansfeatures.NewResolver(plansClient, cfg.Plans.UserID, cfg.Plans.AllowAll),
		entitlements.Options{
			AdminOverride: cfg.PremiumOverride,
			CouponCodes:   cfg.CouponCodes,
			Redemptions:   deps.Settings,
			Logger:        log,
		},
	)
	if _, err := ent.Restore(ctx); err != nil {
		log.Warn("coupon redemption unavailable", logger.Fields{"err": err})
	}
	if _, err := ent.Refresh(ctx); err != nil {
		log.Warn("premium status unavailable, using free tier", logger.Fields{"err": err})
	}

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	sched := cronsched.New(hub, cronsched.Options{Sweep: cfg.NotifySweep, Logger: log})

	photos, err := localfs.New(cfg.PhotosDir)
	if err != nil {
		return fmt.Errorf("photos dir init: %w", err)
	}

	deps.Notifier = sched
	deps.Photos = photos
	deps.Entitlements = ent
	deps.Logger = log

	store := tracker.NewStore(deps)
	store.Initialize(ctx)

	// El scheduler vive en memoria: al arrancar se reprograma todo lo futuro.
	if n, err := store.RestoreNotifications(ctx); err != nil {
		log.Warn("restore notifications incomplete", logger.Fields{"restored": n, "err": err})
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("notification scheduler start: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Store:        store,
			Entitlements: ent,
			Hub:          hub,
			Logger:       log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": cfg.Addr(), "storage": cfg.Storage})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
	}
	log.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// openStorage devuelve los repos según STORAGE_DRIVER y una función para cerrar la DB.
func openStorage(ctx context.Context, cfg config.Config, log logger.Logger) (tracker.Deps, func(), error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Storage {
	case config.StorageSQLite:
		db, err = sqlite.Open(cfg.SQLitePath)
	case config.StoragePostgres:
		db, err = postgres.Open(ctx, cfg.DBDSN)
	default:
		return tracker.Deps{
			Pets:      mem.NewPetRepo(),
			CareItems: mem.NewCareRepo(),
			Reminders: mem.NewReminderRepo(),
			Settings:  mem.NewSettingsRepo(),
		}, func() {}, nil
	}
	if err != nil {
		return tracker.Deps{}, nil, err
	}

	if err := sqlstore.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return tracker.Deps{}, nil, err
	}
	log.Info("database ready", logger.Fields{"driver": db.DriverName()})

	return tracker.Deps{
		Pets:      sqlstore.NewPetsRepo(db),
		CareItems: sqlstore.NewCareRepo(db),
		Reminders: sqlstore.NewRemindersRepo(db),
		Settings:  sqlstore.NewSettingsRepo(db),
	}, func() { _ = db.Close() }, nil
}
