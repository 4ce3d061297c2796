package interfaces

import (
	"log"
	"net/http"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

type AnomalyServiceInterface interface {
	DetectAnomalies(userID int64, sensitivity string, days int) (*application.AnomalyReport, error)
}

type AnomalyHandler struct {
	service      AnomalyServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewAnomalyHandler(
	service AnomalyServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *AnomalyHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &AnomalyHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *AnomalyHandler) DetectAnomalies(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	sensitivity, err := queryEnum(r, "sensitivity", "medium", "low", "medium", "high")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid sensitivity, must be one of: low, medium, high")
		return
	}
	days, err := queryInt(r, "days", 90, 30, 365)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.DetectAnomalies(userID, sensitivity, days)
	if err != nil {
		log.Println("Error during anomaly detection:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to detect anomalies")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Anomalies detected successfully.",
		"data":    report,
	})
}
