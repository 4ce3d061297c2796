package interfaces

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
	analyticsErrors "github.com/sebuszqo/FinanceAnalytics/internal/analytics/errors"
)

type GoalServiceInterface interface {
	GetAchievementProbability(userID, goalID int64) (*application.AchievementProbability, error)
	GetTimelineProjections(userID, goalID int64) (*application.TimelineProjections, error)
	GetContributionRecommendations(userID, goalID int64) (*application.ContributionRecommendations, error)
}

type GoalHandler struct {
	service      GoalServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewGoalHandler(
	service GoalServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *GoalHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &GoalHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func goalIDFromPath(r *http.Request) (int64, error) {
	goalID, err := strconv.ParseInt(r.PathValue("goalID"), 10, 64)
	if err != nil || goalID <= 0 {
		return 0, errors.New("Invalid goal ID")
	}
	return goalID, nil
}

func (h *GoalHandler) handleGoalError(w http.ResponseWriter, operation string, err error) {
	if errors.Is(err, analyticsErrors.ErrGoalNotFound) {
		h.respondError(w, http.StatusNotFound, "Goal not found")
		return
	}
	log.Println("Error during "+operation+":", err.Error())
	h.respondError(w, http.StatusInternalServerError, "Failed to retrieve "+operation)
}

func (h *GoalHandler) GetAchievementProbability(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID, err := goalIDFromPath(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	probability, err := h.service.GetAchievementProbability(userID, goalID)
	if err != nil {
		h.handleGoalError(w, "achievement probability", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Achievement probability retrieved successfully.",
		"data":    probability,
	})
}

func (h *GoalHandler) GetTimelineProjections(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID, err := goalIDFromPath(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	projections, err := h.service.GetTimelineProjections(userID, goalID)
	if err != nil {
		h.handleGoalError(w, "timeline projections", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Timeline projections retrieved successfully.",
		"data":    projections,
	})
}

func (h *GoalHandler) GetContributionRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID, err := goalIDFromPath(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	recommendations, err := h.service.GetContributionRecommendations(userID, goalID)
	if err != nil {
		h.handleGoalError(w, "contribution recommendations", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Contribution recommendations retrieved successfully.",
		"data":    recommendations,
	})
}
