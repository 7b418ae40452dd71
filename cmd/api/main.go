package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"sportscheduler/config"
	_ "sportscheduler/docs"
	"sportscheduler/internal/adapters/auth"
	delivery "sportscheduler/internal/delivery/http"
	"sportscheduler/internal/delivery/http/controllers"
	"sportscheduler/internal/delivery/http/middleware"
	"sportscheduler/internal/repository/postgres"
	"sportscheduler/internal/services"
)

// @title Sport Scheduler API
// @version 1.0
// @description Role-based scheduling for sports play sessions: admins manage the catalog and review join requests, players find and join sessions.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token, prefixed with "Bearer "

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	sportRepo := postgres.NewSportRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	joinRepo := postgres.NewJoinRequestRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	issuer, verifier := auth.NewJWTCodec(cfg.JWTSecret)

	authSvc := services.NewAuthService(userRepo, hasher, issuer, cfg.JWTExpiry, cfg.AdminSignupCode)
	userSvc := services.NewUserService(userRepo)
	sportSvc := services.NewSportService(sportRepo)
	sessionSvc := services.NewSessionService(sportRepo, sessionRepo, joinRepo)
	participationSvc := services.NewParticipationService(sessionRepo, joinRepo)
	reportSvc := services.NewReportService(reportRepo, sessionRepo, joinRepo)

	mux := delivery.NewRouter(delivery.Controllers{
		Auth:    controllers.NewAuthController(logger, authSvc),
		User:    controllers.NewUserController(logger, userSvc),
		Sport:   controllers.NewSportController(logger, sportSvc),
		Session: controllers.NewSessionController(logger, sessionSvc),
		Request: controllers.NewRequestController(logger, participationSvc),
		Report:  controllers.NewReportController(logger, reportSvc),
	}, verifier)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
