package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/aylton-yh/real-balance/internal/auth"
	database "github.com/aylton-yh/real-balance/internal/db"
	"github.com/aylton-yh/real-balance/internal/finance/application"
	"github.com/aylton-yh/real-balance/internal/finance/infrastructure"
	"github.com/aylton-yh/real-balance/internal/finance/interfaces"
	"github.com/aylton-yh/real-balance/internal/planning"
	"github.com/aylton-yh/real-balance/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	authHandler        *auth.Handler
	authService        auth.Service
	userHandler        *user.Handler
	accountHandler     *interfaces.AccountHandler
	categoryHandler    *interfaces.CategoryHandler
	transactionHandler *interfaces.TransactionHandler
	statsHandler       *interfaces.StatsHandler
	activityHandler    *interfaces.ActivityHandler
	budgetHandler      *interfaces.BudgetHandler
	planningHandler    *planning.Handler
}

func NewServer(
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	accountHandler *interfaces.AccountHandler,
	categoryHandler *interfaces.CategoryHandler,
	transactionHandler *interfaces.TransactionHandler,
	statsHandler *interfaces.StatsHandler,
	activityHandler *interfaces.ActivityHandler,
	budgetHandler *interfaces.BudgetHandler,
	planningHandler *planning.Handler,
) *Server {
	return &Server{
		authHandler:        authHandler,
		authService:        authService,
		userHandler:        userHandler,
		accountHandler:     accountHandler,
		categoryHandler:    categoryHandler,
		transactionHandler: transactionHandler,
		statsHandler:       statsHandler,
		activityHandler:    activityHandler,
		budgetHandler:      budgetHandler,
		planningHandler:    planningHandler,
		router:             http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()

	// user profile endpoints
	protectedRoutes.Handle("GET /api/protected/profile",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))

	protectedRoutes.Handle("PUT /api/protected/profile",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.userHandler.HandleUpdateProfile)))

	protectedRoutes.Handle("PUT /api/protected/preferences",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.userHandler.HandleUpdatePreferences)))

	protectedRoutes.Handle("POST /api/protected/change-password",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.userHandler.HandleChangePassword)))

	// ACCOUNTS API
	protectedRoutes.Handle("POST /api/protected/finance/accounts",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.accountHandler.CreateAccount)))

	protectedRoutes.Handle("GET /api/protected/finance/accounts",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.accountHandler.GetUserAccounts)))

	// CATEGORIES API
	protectedRoutes.Handle("GET /api/protected/finance/categories",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.categoryHandler.GetCategories)))

	protectedRoutes.Handle("POST /api/protected/finance/categories",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.categoryHandler.CreateCategory)))

	// TRANSACTIONS API
	protectedRoutes.Handle("POST /api/protected/finance/transactions",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.transactionHandler.CreateTransaction)))

	protectedRoutes.Handle("GET /api/protected/finance/transactions",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.transactionHandler.GetUserTransactions)))

	// DASHBOARD STATS
	protectedRoutes.Handle("GET /api/protected/finance/stats",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.statsHandler.GetDashboardStats)))

	// ACTIVITY LOG
	protectedRoutes.Handle("GET /api/protected/finance/activities",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.activityHandler.GetActivities)))

	protectedRoutes.Handle("POST /api/protected/finance/activities",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.activityHandler.LogActivity)))

	protectedRoutes.Handle("DELETE /api/protected/finance/activities",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.activityHandler.ClearActivities)))

	// BUDGETS API
	protectedRoutes.Handle("GET /api/protected/finance/budgets",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.budgetHandler.GetBudgets)))

	protectedRoutes.Handle("POST /api/protected/finance/budgets",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.budgetHandler.CreateBudget)))

	// PLANNING API
	protectedRoutes.Handle("GET /api/protected/planning/goals",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.planningHandler.GetUserGoals)))

	protectedRoutes.Handle("POST /api/protected/planning/goals",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.planningHandler.CreateGoal)))

	protectedRoutes.Handle("POST /api/protected/planning/ratios",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.planningHandler.CreateRatioSimulation)))

	// Refresh token routes
	refreshTokenRoutes := http.NewServeMux()
	refreshTokenRoutes.Handle("PUT /api/refresh/token", s.authService.JWTRefreshTokenMiddleware()(http.HandlerFunc(s.authHandler.RefreshAccessToken)))

	// Main router
	mainRouter := http.NewServeMux()

	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/api/refresh/", refreshTokenRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB); err != nil {
		log.Fatalf("Could not run database migrations: %v", err)
	}

	userRepo := user.NewUserRepository(dbService.DB)
	jwtManager := auth.NewJWTManager()

	userService := user.NewUserService(userRepo)
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService, authService)

	accountRepo := infrastructure.NewAccountRepository(dbService.DB)
	accountService := application.NewAccountService(accountRepo)
	accountHandler := interfaces.NewAccountHandler(accountService, respondJSON, respondError)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	ledgerRepo := infrastructure.NewLedgerRepository(dbService.DB)
	ledgerService := application.NewLedgerService(ledgerRepo, accountService, categoryService)
	transactionHandler := interfaces.NewTransactionHandler(ledgerService, respondJSON, respondError)

	statsService := application.NewStatsService(accountRepo, ledgerRepo)
	statsHandler := interfaces.NewStatsHandler(statsService, respondJSON, respondError)

	activityRepo := infrastructure.NewActivityRepository(dbService.DB)
	activityService := application.NewActivityService(activityRepo)
	activityHandler := interfaces.NewActivityHandler(activityService, respondJSON, respondError)

	budgetRepo := infrastructure.NewBudgetRepository(dbService.DB)
	budgetService := application.NewBudgetService(budgetRepo, categoryService)
	budgetHandler := interfaces.NewBudgetHandler(budgetService, respondJSON, respondError)

	planningRepo := planning.NewPlanningRepository(dbService.DB)
	planningService := planning.NewPlanningService(planningRepo)
	planningHandler := planning.NewHandler(planningService, respondJSON, respondError)

	server := NewServer(
		authHandler,
		authService,
		userHandler,
		accountHandler,
		categoryHandler,
		transactionHandler,
		statsHandler,
		activityHandler,
		budgetHandler,
		planningHandler,
	)

	server.RegisterRoutes()

	if err := StartRetentionScheduler(activityService); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	loggingMiddleware := loggingMiddleware(http.HandlerFunc(server.router.ServeHTTP))
	log.Println("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", loggingMiddleware); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// StartRetentionScheduler trims activity logs back to the retention cap once a
// day. Writes already trim inline, the job only catches drift from manual
// inserts or crashed requests.
func StartRetentionScheduler(activityService *application.ActivityService) error {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		err := activityService.EnforceRetention(context.Background())
		if err != nil {
			log.Printf("Error enforcing activity retention: %v", err)
		} else {
			log.Println("Activity logs trimmed successfully.")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
