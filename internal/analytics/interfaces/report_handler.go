package interfaces

import (
	"log"
	"net/http"
	"time"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
	analyticsErrors "github.com/sebuszqo/FinanceAnalytics/internal/analytics/errors"
)

type ReportServiceInterface interface {
	GetReportData(userID int64, reportType string, start, end time.Time) (*application.ReportData, error)
}

type ReportHandler struct {
	service      ReportServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewReportHandler(
	service ReportServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ReportHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &ReportHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *ReportHandler) GetReportData(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	reportType, err := queryEnum(r, "type", "summary", "summary", "detailed")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid report type, must be one of: summary, detailed")
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
	now := time.Now()
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if end.IsZero() {
		end = now
	}

	report, err := h.service.GetReportData(userID, reportType, start, end)
	if err != nil {
		switch err {
		case analyticsErrors.ErrInvalidUserID, analyticsErrors.ErrInvalidDateRange:
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Println("Error during report data:", err.Error())
			h.respondError(w, http.StatusInternalServerError, "Failed to retrieve report data")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Report data retrieved successfully.",
		"data":    report,
	})
}
