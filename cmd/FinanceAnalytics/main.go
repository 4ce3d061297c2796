package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	database "github.com/sebuszqo/FinanceAnalytics/db"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/infrastructure"
	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/interfaces"
	"github.com/sebuszqo/FinanceAnalytics/internal/auth"
	"github.com/sebuszqo/FinanceAnalytics/internal/config"
)

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

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}
	respondJSON(w, status, payload)
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Path not found")
}

type Server struct {
	router               *http.ServeMux
	dbService            *database.DBService
	authMiddleware       *auth.Middleware
	transactionHandler   *interfaces.TransactionAnalyticsHandler
	patternHandler       *interfaces.PatternHandler
	accountHandler       *interfaces.AccountHandler
	budgetHandler        *interfaces.BudgetHandler
	anomalyHandler       *interfaces.AnomalyHandler
	forecastHandler      *interfaces.ForecastHandler
	insightHandler       *interfaces.InsightHandler
	visualizationHandler *interfaces.VisualizationHandler
	goalHandler          *interfaces.GoalHandler
	reportHandler        *interfaces.ReportHandler
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	if health["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, health)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) RegisterRoutes() {
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	protected := s.authMiddleware.JWTAccessTokenMiddleware()
	protectedRoutes := http.NewServeMux()

	protectedRoutes.Handle("GET /api/protected/analytics/overview",
		protected(http.HandlerFunc(s.insightHandler.GetFinancialOverview)))
	protectedRoutes.Handle("GET /api/protected/analytics/insights",
		protected(http.HandlerFunc(s.insightHandler.GetFinancialInsights)))

	protectedRoutes.Handle("GET /api/protected/analytics/transactions/summary",
		protected(http.HandlerFunc(s.transactionHandler.GetTransactionAnalytics)))
	protectedRoutes.Handle("GET /api/protected/analytics/transactions/trends",
		protected(http.HandlerFunc(s.transactionHandler.GetSpendingTrends)))
	protectedRoutes.Handle("GET /api/protected/analytics/category-breakdown",
		protected(http.HandlerFunc(s.transactionHandler.GetCategoryBreakdown)))
	protectedRoutes.Handle("GET /api/protected/analytics/income-vs-expenses",
		protected(http.HandlerFunc(s.transactionHandler.GetIncomeVsExpenses)))

	protectedRoutes.Handle("GET /api/protected/analytics/spending-patterns",
		protected(http.HandlerFunc(s.patternHandler.GetSpendingPatterns)))
	protectedRoutes.Handle("GET /api/protected/analytics/income-expense-trends",
		protected(http.HandlerFunc(s.patternHandler.GetIncomeExpenseTrends)))
	protectedRoutes.Handle("GET /api/protected/analytics/year-over-year",
		protected(http.HandlerFunc(s.patternHandler.GetYearOverYearComparison)))

	protectedRoutes.Handle("GET /api/protected/analytics/accounts",
		protected(http.HandlerFunc(s.accountHandler.GetAccountAnalytics)))
	protectedRoutes.Handle("GET /api/protected/analytics/accounts/history",
		protected(http.HandlerFunc(s.accountHandler.GetBalanceHistory)))

	protectedRoutes.Handle("GET /api/protected/analytics/budgets",
		protected(http.HandlerFunc(s.budgetHandler.GetBudgetAnalytics)))
	protectedRoutes.Handle("GET /api/protected/analytics/budgets/performance",
		protected(http.HandlerFunc(s.budgetHandler.GetBudgetPerformance)))
	protectedRoutes.Handle("GET /api/protected/analytics/budgets/recommendations",
		protected(http.HandlerFunc(s.budgetHandler.GetBudgetRecommendations)))

	protectedRoutes.Handle("GET /api/protected/analytics/anomalies",
		protected(http.HandlerFunc(s.anomalyHandler.DetectAnomalies)))

	protectedRoutes.Handle("GET /api/protected/analytics/forecast",
		protected(http.HandlerFunc(s.forecastHandler.GetSpendingForecast)))
	protectedRoutes.Handle("GET /api/protected/analytics/trend-lines",
		protected(http.HandlerFunc(s.forecastHandler.GetTrendLines)))
	protectedRoutes.Handle("GET /api/protected/analytics/seasonality",
		protected(http.HandlerFunc(s.forecastHandler.DetectSeasonality)))
	protectedRoutes.Handle("GET /api/protected/analytics/category/{category}/trends-prediction",
		protected(http.HandlerFunc(s.forecastHandler.PredictCategorySpending)))

	protectedRoutes.Handle("GET /api/protected/analytics/heatmap",
		protected(http.HandlerFunc(s.visualizationHandler.GetSpendingHeatmap)))
	protectedRoutes.Handle("GET /api/protected/analytics/waterfall",
		protected(http.HandlerFunc(s.visualizationHandler.GetWaterfallData)))
	protectedRoutes.Handle("GET /api/protected/analytics/comparison",
		protected(http.HandlerFunc(s.visualizationHandler.GetComparisonData)))

	protectedRoutes.Handle("GET /api/protected/analytics/goals/{goalID}/probability",
		protected(http.HandlerFunc(s.goalHandler.GetAchievementProbability)))
	protectedRoutes.Handle("GET /api/protected/analytics/goals/{goalID}/projections",
		protected(http.HandlerFunc(s.goalHandler.GetTimelineProjections)))
	protectedRoutes.Handle("GET /api/protected/analytics/goals/{goalID}/recommendations",
		protected(http.HandlerFunc(s.goalHandler.GetContributionRecommendations)))

	protectedRoutes.Handle("GET /api/protected/analytics/reports/data",
		protected(http.HandlerFunc(s.reportHandler.GetReportData)))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService(cfg.DBConnectionString)
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(jwtManager)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	accountRepo := infrastructure.NewAccountRepository(dbService.DB)
	budgetRepo := infrastructure.NewBudgetRepository(dbService.DB)
	goalRepo := infrastructure.NewGoalRepository(dbService.DB)

	transactionService := application.NewTransactionService(transactionRepo)
	patternService := application.NewPatternService(transactionRepo)
	accountService := application.NewAccountService(accountRepo, transactionRepo)
	budgetService := application.NewBudgetService(budgetRepo, transactionRepo)
	anomalyService := application.NewAnomalyService(transactionRepo)
	forecastService := application.NewForecastService(transactionRepo)
	insightService := application.NewInsightService(accountRepo, transactionRepo, budgetRepo)
	visualizationService := application.NewVisualizationService(accountRepo, transactionRepo)
	goalService := application.NewGoalService(goalRepo, transactionRepo)
	reportService := application.NewReportService(transactionRepo)

	server := &Server{
		dbService:            dbService,
		authMiddleware:       authMiddleware,
		transactionHandler:   interfaces.NewTransactionAnalyticsHandler(transactionService, respondJSON, respondError),
		patternHandler:       interfaces.NewPatternHandler(patternService, respondJSON, respondError),
		accountHandler:       interfaces.NewAccountHandler(accountService, respondJSON, respondError),
		budgetHandler:        interfaces.NewBudgetHandler(budgetService, respondJSON, respondError),
		anomalyHandler:       interfaces.NewAnomalyHandler(anomalyService, respondJSON, respondError),
		forecastHandler:      interfaces.NewForecastHandler(forecastService, respondJSON, respondError),
		insightHandler:       interfaces.NewInsightHandler(insightService, respondJSON, respondError),
		visualizationHandler: interfaces.NewVisualizationHandler(visualizationService, respondJSON, respondError),
		goalHandler:          interfaces.NewGoalHandler(goalService, respondJSON, respondError),
		reportHandler:        interfaces.NewReportHandler(reportService, respondJSON, respondError),
	}
	server.RegisterRoutes()

	handler := loggingMiddleware(server.router)
	log.Printf("Server starting on port %s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
