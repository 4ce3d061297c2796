package interfaces

import (
	"log"
	"net/http"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

type BudgetServiceInterface interface {
	GetBudgetAnalytics(userID int64) (*application.BudgetAnalytics, error)
	GetBudgetPerformance(userID int64) (*application.BudgetPerformance, error)
	GetBudgetRecommendations(userID int64) (*application.BudgetRecommendations, error)
}

type BudgetHandler struct {
	service      BudgetServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewBudgetHandler(
	service BudgetServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *BudgetHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &BudgetHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *BudgetHandler) GetBudgetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	analytics, err := h.service.GetBudgetAnalytics(userID)
	if err != nil {
		log.Println("Error during budget analytics:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve budget analytics")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budget analytics retrieved successfully.",
		"data":    analytics,
	})
}

func (h *BudgetHandler) GetBudgetPerformance(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	performance, err := h.service.GetBudgetPerformance(userID)
	if err != nil {
		log.Println("Error during budget performance:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve budget performance")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budget performance retrieved successfully.",
		"data":    performance,
	})
}

func (h *BudgetHandler) GetBudgetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recommendations, err := h.service.GetBudgetRecommendations(userID)
	if err != nil {
		log.Println("Error during budget recommendations:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve budget recommendations")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budget recommendations retrieved successfully.",
		"data":    recommendations,
	})
}
