package interfaces

import (
	"log"
	"net/http"
	"strconv"

	"github.com/sebuszqo/FinanceAnalytics/internal/analytics/application"
)

type AccountServiceInterface interface {
	GetAccountAnalytics(userID int64) (*application.AccountAnalytics, error)
	GetBalanceHistory(userID, accountID int64, period string) (*application.BalanceHistory, error)
}

type AccountHandler struct {
	service      AccountServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewAccountHandler(
	service AccountServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *AccountHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &AccountHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *AccountHandler) GetAccountAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	analytics, err := h.service.GetAccountAnalytics(userID)
	if err != nil {
		log.Println("Error during account analytics:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve account analytics")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Account analytics retrieved successfully.",
		"data":    analytics,
	})
}

func (h *AccountHandler) GetBalanceHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	period, err := queryPeriod(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var accountID int64
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		accountID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || accountID <= 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid account_id")
			return
		}
	}

	history, err := h.service.GetBalanceHistory(userID, accountID, period)
	if err != nil {
		log.Println("Error during balance history:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve balance history")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Balance history retrieved successfully.",
		"data":    history,
	})
}
