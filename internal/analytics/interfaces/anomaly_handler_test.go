package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

func TestDetectAnomalies(t *testing.T) {
	service := &MockAnomalyService{Report: &application.AnomalyReport{}}
	handler := NewAnomalyHandler(service, respondJSON, respondError)

	req := authorizedRequest(http.MethodGet, "/api/protected/analytics/anomalies?sensitivity=high&days=30")
	w := httptest.NewRecorder()

	handler.DetectAnomalies(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "high", service.Sensitivity)
	assert.Equal(t, 30, service.Days)
}

func TestDetectAnomalies_Defaults(t *testing.T) {
	service := &MockAnomalyService{Report: &application.AnomalyReport{}}
	handler := NewAnomalyHandler(service, respondJSON, respondError)

	req := authorizedRequest(http.MethodGet, "/api/protected/analytics/anomalies")
	w := httptest.NewRecorder()

	handler.DetectAnomalies(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "medium", service.Sensitivity)
	assert.Equal(t, 90, service.Days)
}

func TestDetectAnomalies_InvalidSensitivity(t *testing.T) {
	handler := NewAnomalyHandler(&MockAnomalyService{}, respondJSON, respondError)

	req := authorizedRequest(http.MethodGet, "/api/protected/analytics/anomalies?sensitivity=extreme")
	w := httptest.NewRecorder()

	handler.DetectAnomalies(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid sensitivity, must be one of: low, medium, high", response["message"])
}

func TestDetectAnomalies_DaysOutOfRange(t *testing.T) {
	handler := NewAnomalyHandler(&MockAnomalyService{}, respondJSON, respondError)

	for _, days := range []string{"10", "4000"} {
		req := authorizedRequest(http.MethodGet, "/api/protected/analytics/anomalies?days="+days)
		w := httptest.NewRecorder()

		handler.DetectAnomalies(w, req)

		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		var response map[string]interface{}
		err := json.NewDecoder(res.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, "Invalid days, must be an integer between 30 and 365", response["message"])
	}
}
