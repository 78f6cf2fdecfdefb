package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidStartAt        = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgShopNotFound          = "салон не найден"
	msgTherapistNotInShop    = "мастер не числится в этом салоне"
	msgUnknownCourse         = "курс не найден в меню салона"
	msgMissingDuration       = "не указан ни курс, ни длительность услуги"
	msgInvalidExtension      = "некорректное продление услуги"
	msgOutsideBusinessHours  = "интервал вне часов работы салона"
	msgNoMatchingShift       = "у мастера нет подходящей смены"
	msgBreakConflict         = "интервал пересекает перерыв мастера"
	msgSlotOccupied          = "выбранное время уже занято"
	msgNoAvailableTherapist  = "нет доступных мастеров на это время"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени начала)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createReservation.ErrSlotOccupied):
			h.logger.Warn("POST /reservations - Slot occupied: guest_id=%d, shop_id=%d", userID, req.ShopID)
			handlers.RespondError(w, http.StatusConflict, msgSlotOccupied)

		case errors.Is(err, createReservation.ErrNoAvailableTherapist):
			h.logger.Warn("POST /reservations - No available therapist: guest_id=%d, shop_id=%d", userID, req.ShopID)
			handlers.RespondError(w, http.StatusConflict, msgNoAvailableTherapist)

		case errors.Is(err, createReservation.ErrShopNotFound):
			h.logger.Warn("POST /reservations - Shop not found: shop_id=%d", req.ShopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, createReservation.ErrTherapistNotInShop):
			h.logger.Warn("POST /reservations - Therapist not in shop: guest_id=%d, shop_id=%d", userID, req.ShopID)
			handlers.RespondNotFound(w, msgTherapistNotInShop)

		case errors.Is(err, createReservation.ErrUnknownCourse):
			h.logger.Warn("POST /reservations - Unknown course: guest_id=%d, shop_id=%d", userID, req.ShopID)
			handlers.RespondBadRequest(w, msgUnknownCourse)

		case errors.Is(err, createReservation.ErrMissingDuration):
			h.logger.Warn("POST /reservations - Missing duration: guest_id=%d, shop_id=%d", userID, req.ShopID)
			handlers.RespondBadRequest(w, msgMissingDuration)

		case errors.Is(err, createReservation.ErrInvalidExtension):
			h.logger.Warn("POST /reservations - Invalid extension: guest_id=%d, shop_id=%d", userID, req.ShopID)
			handlers.RespondBadRequest(w, msgInvalidExtension)

		case errors.Is(err, createReservation.ErrOutsideBusinessHours):
			h.logger.Warn("POST /reservations - Outside business hours: guest_id=%d, shop_id=%d", userID, req.ShopID)
			handlers.RespondError(w, http.StatusConflict, msgOutsideBusinessHours)

		case errors.Is(err, createReservation.ErrNoMatchingShift):
			h.logger.Warn("POST /reservations - No matching shift: guest_id=%d, shop_id=%d", userID, req.ShopID)
			handlers.RespondError(w, http.StatusConflict, msgNoMatchingShift)

		case errors.Is(err, createReservation.ErrBreakConflict):
			h.logger.Warn("POST /reservations - Break conflict: guest_id=%d, shop_id=%d", userID, req.ShopID)
			handlers.RespondError(w, http.StatusConflict, msgBreakConflict)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: guest_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: guest_id=%d, shop_id=%d, error=%v",
				userID, req.ShopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, guest_id=%d, shop_id=%d",
		result.ID, userID, req.ShopID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
