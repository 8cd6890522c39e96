package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc/reflection"

	grpcapi "studybuddy-backend/internal/api/grpc"
	httpapi "studybuddy-backend/internal/api/http"
	"studybuddy-backend/internal/config"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository/postgres"
	"studybuddy-backend/internal/security"
	"studybuddy-backend/internal/service"
	"studybuddy-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting StudyBuddy Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "health_port", cfg.Server.HealthPort)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Email configuration", "provider", cfg.Email.Provider, "from", cfg.Email.From)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if err := postgres.Migrate(context.Background(), db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.TokenExpiry())

	// Initialize Storage
	logger.Info("Using local file storage", "upload_dir", cfg.Storage.UploadDir)
	fileStore, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize file storage", "error", err)
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Initialize Email Service
	emailSvc := newEmailService(cfg)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	memberSvc := service.NewMembershipService(store.GroupRepository, store.MembershipRepository)
	inviteSvc := service.NewInviteService(store.GroupRepository, memberSvc)
	groupSvc := service.NewGroupService(store.GroupRepository, store.UserRepository, memberSvc, inviteSvc, fileStore)
	requestSvc := service.NewJoinRequestService(
		store.GroupRepository,
		store.JoinRequestRepository,
		store.UserRepository,
		memberSvc,
		emailSvc,
	)
	fileSvc := service.NewFileService(store.FileRepository, store.GroupRepository, memberSvc, fileStore, cfg.MaxFileSizeBytes())
	sessionSvc := service.NewSessionService(store.SessionRepository, store.GroupRepository, memberSvc)
	dashboardSvc := service.NewDashboardService(store.DashboardRepository)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth: httpapi.NewAuthHandler(authSvc, httpapi.CookieConfig{
			Name:   cfg.JWT.CookieName,
			Secure: cfg.JWT.CookieSecure,
			MaxAge: cfg.TokenExpiry(),
		}),
		Groups:    httpapi.NewGroupHandler(groupSvc, memberSvc, inviteSvc),
		Requests:  httpapi.NewJoinRequestHandler(requestSvc),
		Files:     httpapi.NewFileHandler(fileSvc, cfg.MaxFileSizeBytes()),
		Sessions:  httpapi.NewSessionHandler(sessionSvc),
		Dashboard: httpapi.NewDashboardHandler(dashboardSvc),
		Health:    httpapi.NewHealthHandler(db),
	}
	router := httpapi.NewRouter(handlers, httpapi.NewAuthMiddleware(tokenManager, cfg.JWT.CookieName))

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up gRPC health server
	if cfg.Server.HealthPort > 0 {
		lis, err := net.Listen("tcp", cfg.GetHealthAddress())
		if err != nil {
			logger.Error("Failed to listen", "error", err, "address", cfg.GetHealthAddress())
			log.Fatalf("Failed to listen: %v", err)
		}

		checker := grpcapi.NewHealthChecker(db, 10*time.Second)
		grpcServer := grpcapi.NewServer(checker)

		// Register reflection service for grpcurl
		reflection.Register(grpcServer)

		go checker.Run(ctx)
		go func() {
			logger.Info("gRPC health server listening", "address", cfg.GetHealthAddress())
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("Failed to serve gRPC", "error", err)
			}
		}()
		defer grpcServer.GracefulStop()
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}

func newEmailService(cfg *config.Config) service.EmailService {
	if cfg.Email.Provider == "sendgrid" {
		return service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	}
	logger.Info("Email delivery disabled, messages will be logged")
	return service.NewLogEmailService()
}
