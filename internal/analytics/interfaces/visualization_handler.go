package interfaces

import (
	"log"
	"net/http"
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

type VisualizationServiceInterface interface {
	GetSpendingHeatmap(userID int64, months int) (*application.SpendingHeatmap, error)
	GetWaterfallData(userID int64, start, end time.Time) (*application.WaterfallData, error)
	GetComparisonData(userID int64, comparisonType string) (*application.ComparisonData, error)
}

type VisualizationHandler struct {
	service      VisualizationServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewVisualizationHandler(
	service VisualizationServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *VisualizationHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &VisualizationHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *VisualizationHandler) GetSpendingHeatmap(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	months, err := queryInt(r, "months", 6, 1, 24)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	heatmap, err := h.service.GetSpendingHeatmap(userID, months)
	if err != nil {
		log.Println("Error during spending heatmap:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve spending heatmap")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Spending heatmap retrieved successfully.",
		"data":    heatmap,
	})
}

func (h *VisualizationHandler) GetWaterfallData(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	start, err := queryDate(r, "start_date")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		h.respondError(w, http.StatusBadRequest, "Start date must not be after end date")
		return
	}

	waterfall, err := h.service.GetWaterfallData(userID, start, end)
	if err != nil {
		log.Println("Error during waterfall data:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve waterfall data")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Waterfall data retrieved successfully.",
		"data":    waterfall,
	})
}

func (h *VisualizationHandler) GetComparisonData(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	comparisonType, err := queryEnum(r, "type", "month_over_month", "month_over_month", "year_over_year")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid type, must be one of: month_over_month, year_over_year")
		return
	}

	comparison, err := h.service.GetComparisonData(userID, comparisonType)
	if err != nil {
		log.Println("Error during comparison data:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve comparison data")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Comparison data retrieved successfully.",
		"data":    comparison,
	})
}
