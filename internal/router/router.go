package router

import (
	"context"
	"net/http"

	_ "petcare-tracker/docs"
	"petcare-tracker/internal/adapters/realtime"
	mem "petcare-tracker/internal/adapters/storage/memory"
	"petcare-tracker/internal/domain/entitlements"
	"petcare-tracker/internal/domain/tracker"
	"petcare-tracker/internal/middleware"
	"petcare-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, se arma un Store in-memory ya inicializado.
	Store        *tracker.Store
	Entitlements *entitlements.Service

	// Opcional: sin hub no se monta /ws.
	Hub    *realtime.Hub
	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := logger.OrNop(opts.Logger)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ent := opts.Entitlements
	if ent == nil {
		ent = entitlements.NewService(nil, entitlements.Options{Logger: log})
	}

	store := opts.Store
	if store == nil {
		store = tracker.NewStore(tracker.Deps{
			Pets:         mem.NewPetRepo(),
			CareItems:    mem.NewCareRepo(),
			Reminders:    mem.NewReminderRepo(),
			Settings:     mem.NewSettingsRepo(),
			Entitlements: ent,
			Logger:       log,
		})
		store.Initialize(context.Background())
	}

	tracker.RegisterRoutes(r, store)
	entitlements.RegisterRoutes(r, ent)

	if opts.Hub != nil {
		r.Get("/ws", realtime.Handler(opts.Hub))
	}

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
