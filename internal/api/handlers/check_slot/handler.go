package check_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	checkSlot "github.com/m04kA/SMC-ReservationService/internal/usecase/check_reservation_slot"
)

const (
	msgInvalidShopID      = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат времени начала, ожидается RFC3339"
	msgShopNotFound       = "салон не найден"
	msgTherapistNotInShop = "мастер не числится в этом салоне"
	msgUnknownCourse      = "курс не найден в меню салона"
	msgMissingDuration    = "не указан ни курс, ни длительность услуги"
	msgInvalidExtension   = "некорректное продление услуги"
)

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/check-slot
// Проверка читающая: hold не создаётся, ответ может устареть
// к моменту создания брони
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/check-slot - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	var req CheckSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/check-slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(shopID)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/check-slot - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkSlot.ErrShopNotFound):
			h.logger.Warn("POST /shops/{id}/check-slot - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, checkSlot.ErrTherapistNotInShop):
			h.logger.Warn("POST /shops/{id}/check-slot - Therapist not in shop: shop_id=%d, therapist_id=%d",
				shopID, req.TherapistID)
			handlers.RespondNotFound(w, msgTherapistNotInShop)

		case errors.Is(err, checkSlot.ErrUnknownCourse):
			h.logger.Warn("POST /shops/{id}/check-slot - Unknown course: shop_id=%d", shopID)
			handlers.RespondBadRequest(w, msgUnknownCourse)

		case errors.Is(err, checkSlot.ErrMissingDuration):
			h.logger.Warn("POST /shops/{id}/check-slot - Missing duration: shop_id=%d", shopID)
			handlers.RespondBadRequest(w, msgMissingDuration)

		case errors.Is(err, checkSlot.ErrInvalidExtension):
			h.logger.Warn("POST /shops/{id}/check-slot - Invalid extension: shop_id=%d", shopID)
			handlers.RespondBadRequest(w, msgInvalidExtension)

		case errors.Is(err, checkSlot.ErrInvalidInput):
			h.logger.Warn("POST /shops/{id}/check-slot - Invalid input: shop_id=%d, error=%v", shopID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /shops/{id}/check-slot - Failed to check slot: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/check-slot - Checked: shop_id=%d, therapist_id=%d, available=%t",
		shopID, req.TherapistID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
