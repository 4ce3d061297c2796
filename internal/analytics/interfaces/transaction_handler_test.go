package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

func authorizedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(context.WithValue(req.Context(), "userID", int64(1)))
}

func TestGetTransactionAnalytics(t *testing.T) {
	service := &MockTransactionAnalyticsService{
		Analytics: &application.TransactionAnalytics{TotalTransactions: 3},
	}
	handler := NewTransactionAnalyticsHandler(service, respondJSON, respondError)

	req := authorizedRequest(http.MethodGet, "/api/protected/analytics/transactions/summary?period=month")
	w := httptest.NewRecorder()

	handler.GetTransactionAnalytics(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response["status"])

	data, ok := response["data"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(3), data["total_transactions"])
}

func TestGetTransactionAnalytics_InvalidPeriod(t *testing.T) {
	handler := NewTransactionAnalyticsHandler(&MockTransactionAnalyticsService{}, respondJSON, respondError)

	req := authorizedRequest(http.MethodGet, "/api/protected/analytics/transactions/summary?period=decade")
	w := httptest.NewRecorder()

	handler.GetTransactionAnalytics(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "error", response["status"])
	assert.Equal(t, "Invalid period, must be one of: week, month, year", response["message"])
}

func TestGetTransactionAnalytics_Unauthorized(t *testing.T) {
	handler := NewTransactionAnalyticsHandler(&MockTransactionAnalyticsService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/analytics/transactions/summary", nil)
	w := httptest.NewRecorder()

	handler.GetTransactionAnalytics(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestGetTransactionAnalytics_ServiceError(t *testing.T) {
	service := &MockTransactionAnalyticsService{Err: errors.New("db down")}
	handler := NewTransactionAnalyticsHandler(service, respondJSON, respondError)

	req := authorizedRequest(http.MethodGet, "/api/protected/analytics/transactions/summary")
	w := httptest.NewRecorder()

	handler.GetTransactionAnalytics(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Failed to retrieve transaction analytics", response["message"])
}

func TestGetCategoryBreakdown_InvalidType(t *testing.T) {
	handler := NewTransactionAnalyticsHandler(&MockTransactionAnalyticsService{}, respondJSON, respondError)

	req := authorizedRequest(http.MethodGet, "/api/protected/analytics/category-breakdown?type=transfer")
	w := httptest.NewRecorder()

	handler.GetCategoryBreakdown(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid transaction type", response["message"])
}
