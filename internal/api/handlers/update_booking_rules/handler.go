package update_booking_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/shoprules"
	"github.com/m04kA/SMC-ReservationService/internal/service/shoprules/models"
)

const (
	msgInvalidShopID      = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgShopNotFound       = "салон не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidRules       = "некорректные значения правил бронирования"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UpdateRulesRequest HTTP request model
type UpdateRulesRequest struct {
	BaseBufferMinutes    int `json:"baseBufferMinutes"`
	MaxExtensionMinutes  int `json:"maxExtensionMinutes"`
	ExtensionStepMinutes int `json:"extensionStepMinutes"`
}

// Handle PUT /api/v1/shops/{shopId}/booking-rules
// Доступно только менеджерам салона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /shops/{id}/booking-rules - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /shops/{id}/booking-rules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shops/{id}/booking-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateRulesRequest{
		UserID:               userID,
		BaseBufferMinutes:    req.BaseBufferMinutes,
		MaxExtensionMinutes:  req.MaxExtensionMinutes,
		ExtensionStepMinutes: req.ExtensionStepMinutes,
	}

	updated, err := h.service.Update(r.Context(), shopID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, shoprules.ErrShopNotFound):
			h.logger.Warn("PUT /shops/{id}/booking-rules - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, shoprules.ErrAccessDenied):
			h.logger.Warn("PUT /shops/{id}/booking-rules - Access denied: shop_id=%d, user_id=%d", shopID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, shoprules.ErrInvalidInput):
			h.logger.Warn("PUT /shops/{id}/booking-rules - Invalid rules: shop_id=%d, error=%v", shopID, err)
			handlers.RespondBadRequest(w, msgInvalidRules)

		default:
			h.logger.Error("PUT /shops/{id}/booking-rules - Failed to update rules: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shops/{id}/booking-rules - Rules updated successfully: shop_id=%d, user_id=%d", shopID, userID)
	handlers.RespondJSON(w, http.StatusOK, updated)
}
