package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/spliteasy/spliteasy/internal/auth"
	"github.com/spliteasy/spliteasy/internal/config"
	"github.com/spliteasy/spliteasy/internal/events"
	"github.com/spliteasy/spliteasy/internal/events/kafka"
	"github.com/spliteasy/spliteasy/internal/middleware"
	"github.com/spliteasy/spliteasy/internal/service"
	"github.com/spliteasy/spliteasy/internal/storage/sqlite"
	"github.com/spliteasy/spliteasy/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage ready", "path", cfg.DBPath)

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		slog.Info("Event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	authService := service.NewAuthService(authenticator, jwtManager, store)
	friendService := service.NewFriendService(store)
	expenseService := service.NewExpenseService(store, publisher, cfg.MaxAmountPaisa, cfg.MaxParticipants)
	settlementService := service.NewSettlementService(store, publisher, cfg.MaxAmountPaisa)
	debtService := service.NewDebtService(store)
	groupService := service.NewGroupService(store)
	healthService := service.NewHealthService(store)

	router := mux.NewRouter()
	router.Use(middleware.Metrics, middleware.Logging, middleware.CORS(cfg.ClientURL))
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", healthService.Check).Methods(http.MethodGet)
	api.HandleFunc("/users/register", authService.Register).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/users/login", authService.Login).Methods(http.MethodPost, http.MethodOptions)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth(jwtManager))
	protected.HandleFunc("/users/me", authService.Me).Methods(http.MethodGet)
	protected.HandleFunc("/friends/add", friendService.Add).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/friends", friendService.List).Methods(http.MethodGet)
	protected.HandleFunc("/expenses", expenseService.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/expenses", expenseService.List).Methods(http.MethodGet)
	protected.HandleFunc("/settlements", settlementService.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/settlements", settlementService.List).Methods(http.MethodGet)
	protected.HandleFunc("/debts", debtService.Get).Methods(http.MethodGet)
	protected.HandleFunc("/groups", groupService.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/groups", groupService.List).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id}", groupService.Get).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id}", groupService.Delete).Methods(http.MethodDelete, http.MethodOptions)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
