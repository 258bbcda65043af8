package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"peopledesk/internal/domain/admin"
	"peopledesk/internal/domain/attendance"
	"peopledesk/internal/domain/auth"
	"peopledesk/internal/domain/category"
	"peopledesk/internal/domain/employee"
	"peopledesk/internal/domain/leave"
	"peopledesk/internal/domain/payroll"
	"peopledesk/internal/platform/config"
	"peopledesk/internal/platform/db"
	"peopledesk/internal/platform/metrics"
	"peopledesk/internal/platform/storage"
	"peopledesk/internal/transport/http/api"
	attendancehandler "peopledesk/internal/transport/http/handlers/attendance"
	authhandler "peopledesk/internal/transport/http/handlers/auth"
	categoryhandler "peopledesk/internal/transport/http/handlers/category"
	employeehandler "peopledesk/internal/transport/http/handlers/employee"
	leavehandler "peopledesk/internal/transport/http/handlers/leave"
	payrollhandler "peopledesk/internal/transport/http/handlers/payroll"
	"peopledesk/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := NewRouter(cfg, pool, collector)

	log.Printf("peopledesk server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func NewRouter(cfg config.Config, pool *pgxpool.Pool, collector *metrics.Collector) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.With(middleware.RequireRole(auth.RoleAdmin)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.UploadDir))))

	images := storage.NewImageStore(cfg.UploadDir)
	adminStore := admin.NewStore(pool)
	employeeStore := employee.NewStore(pool)

	authhandler.NewHandler(adminStore, employeeStore, cfg.JWTSecret, cfg.IsProduction()).RegisterRoutes(router)
	employeehandler.NewHandler(employeeStore, images).RegisterRoutes(router)
	categoryhandler.NewHandler(category.NewStore(pool)).RegisterRoutes(router)
	payrollhandler.NewHandler(payroll.NewStore(pool)).RegisterRoutes(router)
	attendancehandler.NewHandler(attendance.NewStore(pool)).RegisterRoutes(router)
	leavehandler.NewHandler(leave.NewStore(pool)).RegisterRoutes(router)

	return router
}
