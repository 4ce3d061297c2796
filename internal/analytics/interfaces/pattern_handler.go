package interfaces

import (
	"log"
	"net/http"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

type PatternServiceInterface interface {
	GetSpendingPatterns(userID int64, days int, groupBy string) (*application.SpendingPatterns, error)
	GetIncomeExpenseTrends(userID int64, months int) (*application.IncomeExpenseTrends, error)
	GetYearOverYearComparison(userID int64, category string) (*application.YearOverYearComparison, error)
}

type PatternHandler struct {
	service      PatternServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewPatternHandler(
	service PatternServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *PatternHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &PatternHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *PatternHandler) GetSpendingPatterns(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	days, err := queryInt(r, "days", 90, 1, 365)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	groupBy, err := queryEnum(r, "group_by", "day", "day", "week", "month")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid group_by, must be one of: day, week, month")
		return
	}

	patterns, err := h.service.GetSpendingPatterns(userID, days, groupBy)
	if err != nil {
		log.Println("Error during spending patterns:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve spending patterns")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Spending patterns retrieved successfully.",
		"data":    patterns,
	})
}

func (h *PatternHandler) GetIncomeExpenseTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	months, err := queryInt(r, "months", 12, 1, 60)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	trends, err := h.service.GetIncomeExpenseTrends(userID, months)
	if err != nil {
		log.Println("Error during income expense trends:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve income expense trends")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Income expense trends retrieved successfully.",
		"data":    trends,
	})
}

func (h *PatternHandler) GetYearOverYearComparison(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	category := r.URL.Query().Get("category")

	comparison, err := h.service.GetYearOverYearComparison(userID, category)
	if err != nil {
		log.Println("Error during year over year comparison:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve year over year comparison")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Year over year comparison retrieved successfully.",
		"data":    comparison,
	})
}
