package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
	analyticsErrors "github.com/sebuszqo/FinanceAnalytics/internal/analytics/errors"
)

func TestGetAchievementProbability(t *testing.T) {
	service := &MockGoalService{
		Probability: &application.AchievementProbability{GoalID: 7, Probability: 70},
	}
	handler := NewGoalHandler(service, respondJSON, respondError)

	req := authorizedRequest(http.MethodGet, "/api/protected/analytics/goals/7/probability")
	req.SetPathValue("goalID", "7")
	w := httptest.NewRecorder()

	handler.GetAchievementProbability(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int64(7), service.GoalID)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response["status"])
}

func TestGetAchievementProbability_NotFound(t *testing.T) {
	service := &MockGoalService{Err: analyticsErrors.ErrGoalNotFound}
	handler := NewGoalHandler(service, respondJSON, respondError)

	req := authorizedRequest(http.MethodGet, "/api/protected/analytics/goals/99/probability")
	req.SetPathValue("goalID", "99")
	w := httptest.NewRecorder()

	handler.GetAchievementProbability(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Goal not found", response["message"])
}

func TestGetTimelineProjections_InvalidGoalID(t *testing.T) {
	handler := NewGoalHandler(&MockGoalService{}, respondJSON, respondError)

	req := authorizedRequest(http.MethodGet, "/api/protected/analytics/goals/abc/projections")
	req.SetPathValue("goalID", "abc")
	w := httptest.NewRecorder()

	handler.GetTimelineProjections(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid goal ID", response["message"])
}

func TestGetContributionRecommendations_Unauthorized(t *testing.T) {
	handler := NewGoalHandler(&MockGoalService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/analytics/goals/7/recommendations", nil)
	req.SetPathValue("goalID", "7")
	w := httptest.NewRecorder()

	handler.GetContributionRecommendations(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
