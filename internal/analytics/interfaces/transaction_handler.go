package interfaces

import (
	"log"
	"net/http"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

type TransactionAnalyticsServiceInterface interface {
	GetTransactionAnalytics(userID int64, period string) (*application.TransactionAnalytics, error)
	GetSpendingTrends(userID int64, period string) (*application.SpendingTrends, error)
	GetCategoryBreakdown(userID int64, kind, period string) (*application.CategoryBreakdown, error)
	GetIncomeVsExpenses(userID int64, period string) (*application.IncomeVsExpenses, error)
}

type TransactionAnalyticsHandler struct {
	service      TransactionAnalyticsServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewTransactionAnalyticsHandler(
	service TransactionAnalyticsServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *TransactionAnalyticsHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &TransactionAnalyticsHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *TransactionAnalyticsHandler) GetTransactionAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	period, err := queryPeriod(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	analytics, err := h.service.GetTransactionAnalytics(userID, period)
	if err != nil {
		log.Println("Error during transaction analytics:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transaction analytics")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction analytics retrieved successfully.",
		"data":    analytics,
	})
}

func (h *TransactionAnalyticsHandler) GetSpendingTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	period, err := queryPeriod(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	trends, err := h.service.GetSpendingTrends(userID, period)
	if err != nil {
		log.Println("Error during spending trends:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve spending trends")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Spending trends retrieved successfully.",
		"data":    trends,
	})
}

func (h *TransactionAnalyticsHandler) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	period, err := queryPeriod(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, err := queryEnum(r, "type", "expense", "expense", "income", "all")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction type")
		return
	}

	breakdown, err := h.service.GetCategoryBreakdown(userID, kind, period)
	if err != nil {
		log.Println("Error during category breakdown:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve category breakdown")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category breakdown retrieved successfully.",
		"data":    breakdown,
	})
}

func (h *TransactionAnalyticsHandler) GetIncomeVsExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	period, err := queryPeriod(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comparison, err := h.service.GetIncomeVsExpenses(userID, period)
	if err != nil {
		log.Println("Error during income vs expenses:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve income vs expenses")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Income vs expenses retrieved successfully.",
		"data":    comparison,
	})
}
