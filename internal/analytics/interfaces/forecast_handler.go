package interfaces

import (
	"log"
	"net/http"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

type ForecastServiceInterface interface {
	GetSpendingForecast(userID int64, forecastMonths int, category string) (*application.SpendingForecast, error)
	GetTrendLines(userID int64, months int, metric string) (*application.TrendLines, error)
	DetectSeasonality(userID int64, category string) (*application.Seasonality, error)
	PredictCategorySpending(userID int64, category string) (*application.CategoryPrediction, error)
}

type ForecastHandler struct {
	service      ForecastServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewForecastHandler(
	service ForecastServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ForecastHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &ForecastHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *ForecastHandler) GetSpendingForecast(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	months, err := queryInt(r, "months", 3, 1, 12)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	category := r.URL.Query().Get("category")

	forecast, err := h.service.GetSpendingForecast(userID, months, category)
	if err != nil {
		log.Println("Error during spending forecast:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve spending forecast")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Spending forecast retrieved successfully.",
		"data":    forecast,
	})
}

func (h *ForecastHandler) GetTrendLines(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	months, err := queryInt(r, "months", 12, 3, 24)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	metric, err := queryEnum(r, "metric", "expenses", "expenses", "income", "net")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid metric, must be one of: expenses, income, net")
		return
	}

	trends, err := h.service.GetTrendLines(userID, months, metric)
	if err != nil {
		log.Println("Error during trend lines:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve trend lines")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Trend lines retrieved successfully.",
		"data":    trends,
	})
}

func (h *ForecastHandler) DetectSeasonality(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	category := r.URL.Query().Get("category")

	seasonality, err := h.service.DetectSeasonality(userID, category)
	if err != nil {
		log.Println("Error during seasonality detection:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to detect seasonality")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Seasonality detected successfully.",
		"data":    seasonality,
	})
}

func (h *ForecastHandler) PredictCategorySpending(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	category := r.PathValue("category")
	if category == "" {
		h.respondError(w, http.StatusBadRequest, "Category is required")
		return
	}

	prediction, err := h.service.PredictCategorySpending(userID, category)
	if err != nil {
		log.Println("Error during category prediction:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to predict category spending")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category prediction retrieved successfully.",
		"data":    prediction,
	})
}
