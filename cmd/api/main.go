package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ccm/recadastramento/internal/admin"
	"github.com/ccm/recadastramento/internal/broker"
	"github.com/ccm/recadastramento/internal/config"
	"github.com/ccm/recadastramento/internal/db"
	"github.com/ccm/recadastramento/internal/handlers"
	"github.com/ccm/recadastramento/internal/middleware"
	"github.com/ccm/recadastramento/internal/service"
)

// cmd/api/main.go
func main() {
	cfg := config.Load() // .env

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed | migrate")
	flag.Parse()
	if *task != "" {
		if err := runTask(*task, cfg); err != nil {
			slog.Error("admin_task_failed", "task", *task, "err", err)
			os.Exit(1)
		}
		return // encerra o processo sem subir HTTP
	}

	slog.Info("starting", "port", cfg.Port, "store", cfg.StoreDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("store_open_error", "err", err)
		os.Exit(1)
	}
	defer st.close()

	employees := service.NewEmployeeService(st.employees)
	employees.SetLocation(cfg.Location)
	contacts := service.NewContactService(st.contacts, employees)

	// publisher (Rabbit) é opcional: sem broker a API continua, só não emite eventos
	var pub handlers.Publisher
	if cfg.EventsEnabled {
		p, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
		if err != nil {
			slog.Warn("rabbitmq_unavailable", "err", err)
		} else {
			defer p.Close()
			pub = p
		}
	}

	mux := http.NewServeMux()
	eh := handlers.NewEmployeeHandler(employees, pub, cfg.RequestTimeout)
	eh.Location = cfg.Location
	handlers.Register(mux, eh, handlers.NewContactHandler(contacts, pub, cfg.RequestTimeout))

	limiter := middleware.NewLimiterStore(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartJanitor(ctx, 2*time.Minute)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: middleware.Chain(mux,
			middleware.Logging(slog.Default()),
			middleware.CORS(cfg.CORSOrigins),
			middleware.RateLimit(limiter),
		),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		slog.Info("api_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			stop()
		}
	}()

	// graceful shutdown
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown error", "err", err)
	}
	slog.Info("stopped")
}

func runTask(task string, cfg *config.Config) error {
	ctx := context.Background()

	switch task {
	case "migrate":
		// no mongo o "schema" são os índices, criados pelo openStores
		if cfg.StoreDriver == config.DriverMongo {
			st, err := openStores(ctx, cfg)
			if err != nil {
				return err
			}
			st.close()
			slog.Info("migrate_done", "driver", cfg.StoreDriver)
			return nil
		}
		gdb, dialect, err := openSQL(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.CloseSQL(gdb) }()
		n, err := db.Migrate(gdb, dialect)
		if err != nil {
			return err
		}
		slog.Info("migrate_done", "driver", cfg.StoreDriver, "applied", n)
		return nil

	case "seed":
		// conecta somente o necessário para o seed
		st, err := openStores(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.close()

		employees := service.NewEmployeeService(st.employees)
		employees.SetLocation(cfg.Location)
		contacts := service.NewContactService(st.contacts, employees)
		if err := admin.SeedEmployees(ctx, employees, contacts, slog.Default()); err != nil {
			return err
		}
		slog.Info("seed_done")
		return nil
	}
	return errors.New("unknown admin task: " + task)
}
