package interfaces

import (
	"log"
	"net/http"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

type InsightServiceInterface interface {
	GetFinancialOverview(userID int64) (*application.FinancialOverview, error)
	GetFinancialInsights(userID int64) (*application.FinancialInsights, error)
}

type InsightHandler struct {
	service      InsightServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewInsightHandler(
	service InsightServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *InsightHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &InsightHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *InsightHandler) GetFinancialOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	overview, err := h.service.GetFinancialOverview(userID)
	if err != nil {
		log.Println("Error during financial overview:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve financial overview")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Financial overview retrieved successfully.",
		"data":    overview,
	})
}

func (h *InsightHandler) GetFinancialInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	insights, err := h.service.GetFinancialInsights(userID)
	if err != nil {
		log.Println("Error during financial insights:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve financial insights")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Financial insights retrieved successfully.",
		"data":    insights,
	})
}
