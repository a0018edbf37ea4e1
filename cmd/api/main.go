package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"financetracker/internal/config"
	"financetracker/internal/handler"
	"financetracker/internal/middleware"
	"financetracker/internal/repository"
	"financetracker/internal/service"
	"financetracker/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.RunMigrations(cfg.DBConn); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, cfg, mailer)
	h := handler.NewHandler(svc)

	// Nightly balance reconciliation
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReconcileSchedule, func() {
		if err := svc.ReconcileBalances(); err != nil {
			logger.Errorf("Balance reconciliation failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule balance reconciliation: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/profile/theme", h.UpdateTheme).Methods("PUT")
	authRouter.HandleFunc("/dashboard", h.GetDashboardSummary).Methods("GET")
	authRouter.HandleFunc("/dashboard/trend", h.GetTrendChart).Methods("GET")
	authRouter.HandleFunc("/dashboard/pie", h.GetPieChart).Methods("GET")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions/{id:[0-9]+}", h.UpdateTransaction).Methods("PUT")
	authRouter.HandleFunc("/transactions/{id:[0-9]+}", h.DeleteTransaction).Methods("DELETE")
	authRouter.HandleFunc("/transactions/recalculate", h.RecalculateBalance).Methods("POST")
	authRouter.HandleFunc("/transactions/import", h.ImportTransactionsCSV).Methods("POST")
	authRouter.HandleFunc("/transactions/export/csv", h.ExportTransactionsCSV).Methods("GET")
	authRouter.HandleFunc("/transactions/export/xml", h.ExportTransactionsXML).Methods("GET")
	authRouter.HandleFunc("/categories", h.ListCategories).Methods("GET")
	authRouter.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	authRouter.HandleFunc("/categories/summary", h.GetCategoriesData).Methods("GET")
	authRouter.HandleFunc("/categories/{id:[0-9]+}", h.UpdateCategory).Methods("PUT")
	authRouter.HandleFunc("/categories/{id:[0-9]+}", h.DeleteCategory).Methods("DELETE")
	authRouter.HandleFunc("/budgets", h.GetBudgetsOverview).Methods("GET")
	authRouter.HandleFunc("/budgets", h.CreateBudget).Methods("POST")
	authRouter.HandleFunc("/budgets/{id:[0-9]+}", h.UpdateBudget).Methods("PUT")
	authRouter.HandleFunc("/budgets/{id:[0-9]+}", h.DeleteBudget).Methods("DELETE")
	authRouter.HandleFunc("/budgets/notify", h.NotifyOverBudget).Methods("POST")
	authRouter.HandleFunc("/goals", h.GetGoalsOverview).Methods("GET")
	authRouter.HandleFunc("/goals", h.CreateGoal).Methods("POST")
	authRouter.HandleFunc("/goals/chart", h.GetGoalsChartData).Methods("GET")
	authRouter.HandleFunc("/goals/{id:[0-9]+}", h.UpdateGoal).Methods("PUT")
	authRouter.HandleFunc("/goals/{id:[0-9]+}", h.DeleteGoal).Methods("DELETE")
	authRouter.HandleFunc("/goals/{id:[0-9]+}/add", h.AddMoneyToGoal).Methods("POST")
	authRouter.HandleFunc("/goals/{id:[0-9]+}/quick-add", h.QuickAddMoney).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
