package get_booking_rules

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

const (
	msgInvalidShopID = "некорректный ID салона"
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

// Handle GET /api/v1/shops/{shopId}/booking-rules
// Публичный: клиентам нужны лимиты продления до создания брони
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/booking-rules - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	rules, err := h.service.Get(r.Context(), shopID)
	if err != nil {
		h.logger.Error("GET /shops/{id}/booking-rules - Failed to get rules: shop_id=%d, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shops/{id}/booking-rules - Rules retrieved: shop_id=%d, default=%t", shopID, rules.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, rules)
}
