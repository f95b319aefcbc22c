package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ngandu/cimentmart/config"
	"github.com/ngandu/cimentmart/internal/auth"
	"github.com/ngandu/cimentmart/internal/events"
	"github.com/ngandu/cimentmart/internal/gateway"
	handler "github.com/ngandu/cimentmart/internal/handler/http"
	"github.com/ngandu/cimentmart/internal/logger"
	"github.com/ngandu/cimentmart/internal/middleware"
	"github.com/ngandu/cimentmart/internal/pending"
	"github.com/ngandu/cimentmart/internal/repository"
	"github.com/ngandu/cimentmart/internal/repository/postgres"
	"github.com/ngandu/cimentmart/internal/service"
	"github.com/ngandu/cimentmart/internal/worker"
	"go.uber.org/zap"
)

const authTokenKey = "9c1185a5c5e9fc54612808977ee8f548"

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	tokenKey, err := hex.DecodeString(authTokenKey)
	if err != nil {
		logger.Log.Fatal("Error extracting token key", zap.Error(err))
	}
	token := auth.NewAuthToken(tokenKey)

	// pending order store
	rdb := pending.New(cfg.RedisAddr)
	defer rdb.Close()
	pendingStore := pending.NewStore(rdb)

	// payment gateway client
	gw := gateway.NewClient(cfg.GatewayAddr, cfg.GatewayToken)

	// event publisher
	var pub events.Publisher = events.Nop{}
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, events.TopicPaymentStatus, 64)
		producer.Start(ctx)
		pub = producer
	}

	// dependency injection
	// user
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService, token)

	// auth
	authService := service.NewAuthService(userRepo, token)
	authHandler := handler.NewAuthHandler(authService)

	// order
	orderRepo := repository.NewOrderRepository(db)
	orderService := service.NewOrderService(orderRepo, pendingStore)
	orderHandler := handler.NewOrderHandler(orderService)

	// payment
	paymentRepo := repository.NewPaymentRepository(db)
	paymentService := service.NewPaymentService(paymentRepo, gw, pendingStore, pub)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// admin
	statsService := service.NewStatsService(orderRepo, userRepo)
	adminHandler := handler.NewAdminHandler(orderService, userService, statsService)

	// resolve payments abandoned mid-poll
	processor := worker.NewPaymentProcessor(paymentService)
	go processor.ProcessPayments(ctx)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger.Log))

	router.Post("/api/user/register", userHandler.RegisterUser())
	router.Post("/api/user/login", authHandler.LoginUser())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(handler.AuthMiddleware(token))
		group.Get("/api/user/profile", userHandler.GetUserProfile())
		group.Patch("/api/user/profile", userHandler.UpdateUserProfile())
		group.Post("/api/user/orders", orderHandler.CreateUserOrder())
		group.Get("/api/user/orders", orderHandler.ListUserOrders())
		group.Post("/api/user/payments/{orderID}", paymentHandler.ConfirmUserPayment())
		group.Get("/api/user/payments/{orderID}", paymentHandler.GetUserPayment())

		// routes that require the admin role
		group.Group(func(admin chi.Router) {
			admin.Use(handler.AdminOnly)
			admin.Get("/api/admin/orders", adminHandler.ListOrders())
			admin.Get("/api/admin/users", adminHandler.ListUsers())
			admin.Get("/api/admin/stats", adminHandler.GetStats())
			admin.Patch("/api/admin/orders/{orderID}", adminHandler.UpdateOrderStatus())
			admin.Post("/api/admin/users", adminHandler.AddUser())
		})
	})

	logger.Log.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Log.Error("Error starting server", zap.Error(err))
	}

	// stop the worker and flush queued events
	cancel()
	if producer != nil {
		producer.WaitClosed()
	}
}
