package get_daily_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getDailySlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_daily_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

const (
	msgInvalidShopID      = "некорректный ID салона"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTherapistID = "некорректный ID мастера"
	msgInvalidGranularity = "некорректный шаг сетки слотов"
	msgShopNotFound       = "салон не найден"
	msgUnauthorized       = "пользователь не авторизован"
	msgAccessDenied       = "доступ запрещён"
	msgTherapistNotInShop = "мастер не числится в этом салоне"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetDailySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDailySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/slots?date=YYYY-MM-DD
// Публичный таймлайн: tentative схлопнут в blocked
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, false)
}

// HandleAdmin GET /api/v1/shops/{shopId}/slots/admin?date=YYYY-MM-DD
// Админский таймлайн: tentative и blocked различаются, доступен
// только менеджерам салона
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, true)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, adminView bool) {
	var userID int64
	if adminView {
		id, ok := middleware.GetUserID(r.Context())
		if !ok {
			h.logger.Warn("GET /shops/{id}/slots/admin - Missing user ID in context")
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		userID = id
	}

	vars := mux.Vars(r)
	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/slots - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /shops/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	useCaseReq := &getDailySlots.Request{
		ShopID:      shopID,
		Date:        date,
		AdminView:   adminView,
		AdminUserID: userID,
	}

	if raw := query.Get("therapistId"); raw != "" {
		therapistID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/slots - Invalid therapist ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTherapistID)
			return
		}
		useCaseReq.TherapistID = ptr.Ptr(therapistID)
	}

	if raw := query.Get("granularity"); raw != "" {
		granularity, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/slots - Invalid granularity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
		useCaseReq.GranularityMinutes = ptr.Ptr(granularity)
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDailySlots.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/slots - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, getDailySlots.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/slots/admin - Access denied: shop_id=%d", shopID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, getDailySlots.ErrTherapistNotInShop):
			h.logger.Warn("GET /shops/{id}/slots - Therapist not in shop: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgTherapistNotInShop)

		case errors.Is(err, getDailySlots.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/slots - Invalid input: shop_id=%d, error=%v", shopID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /shops/{id}/slots - Failed to get slots: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/slots - Retrieved: shop_id=%d, date=%s, timelines=%d",
		shopID, date.Format(domain.DateFormat), len(result.Timelines))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
