package shoprules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/shoprules"
	shopClient "github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/shoprules/models"
)

// Service сервис для работы с правилами бронирования салонов
type Service struct {
	rulesRepo   RulesRepository
	shopClient  ShopServiceClient
	invalidator SnapshotInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса правил бронирования
func NewService(
	rulesRepo RulesRepository,
	shopClient ShopServiceClient,
	invalidator SnapshotInvalidator,
	logger Logger,
) *Service {
	return &Service{
		rulesRepo:   rulesRepo,
		shopClient:  shopClient,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Get получает правила бронирования салона
// Если правила не настроены - возвращает дефолтные с пометкой isDefault
func (s *Service) Get(ctx context.Context, shopID int64) (*models.RulesResponse, error) {
	s.logger.Info("Get: fetching booking rules for shop=%d", shopID)

	rules, err := s.rulesRepo.GetByShopID(ctx, shopID)
	if err != nil {
		if errors.Is(err, rulesRepo.ErrRulesNotFound) {
			s.logger.Info("Get: no rules configured for shop=%d, returning defaults", shopID)
			defaults := domain.DefaultBookingRules(shopID)
			return models.FromDomainRules(&defaults, true), nil
		}
		s.logger.Error("Get: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched rules for shop=%d", shopID)
	return models.FromDomainRules(rules, false), nil
}

// Update создает или обновляет правила бронирования салона
// Доступно только менеджерам салона. После записи сбрасывает
// кэшированный снапшот салона
func (s *Service) Update(ctx context.Context, shopID int64, req *models.UpdateRulesRequest) (*models.RulesResponse, error) {
	s.logger.Info("Update: updating booking rules for shop=%d by user=%d", shopID, req.UserID)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, shopID, req.UserID); err != nil {
		return nil, err
	}

	// Валидируем значения правил
	if err := validateRules(req); err != nil {
		s.logger.Warn("Update: validation failed for shop=%d: %v", shopID, err)
		return nil, err
	}

	rules := &domain.BookingRules{
		ShopID:               shopID,
		BaseBufferMinutes:    req.BaseBufferMinutes,
		MaxExtensionMinutes:  req.MaxExtensionMinutes,
		ExtensionStepMinutes: req.ExtensionStepMinutes,
	}

	updated, err := s.rulesRepo.Upsert(ctx, rules)
	if err != nil {
		s.logger.Error("Update: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Сбрасываем кэшированный снапшот салона
	if err := s.invalidator.Invalidate(ctx, shopID); err != nil {
		// Кэш истечёт по TTL, запись правил уже прошла
		s.logger.Warn("Update: failed to invalidate shop snapshot for shop=%d: %v", shopID, err)
	}

	s.logger.Info("Update: successfully updated rules for shop=%d", shopID)
	return models.FromDomainRules(updated, false), nil
}

// validateRules проверяет значения правил на бизнес-ограничения
func validateRules(req *models.UpdateRulesRequest) error {
	if req.BaseBufferMinutes < domain.MinBufferMinutes || req.BaseBufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: baseBufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if req.MaxExtensionMinutes < 0 || req.MaxExtensionMinutes > domain.MaxExtensionCapMinutes {
		return fmt.Errorf("%w: maxExtensionMinutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxExtensionCapMinutes)
	}

	if req.ExtensionStepMinutes < domain.MinExtensionStepMinutes || req.ExtensionStepMinutes > domain.MaxExtensionStepMinutes {
		return fmt.Errorf("%w: extensionStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinExtensionStepMinutes, domain.MaxExtensionStepMinutes)
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером салона
func (s *Service) checkManagerAccess(ctx context.Context, shopID int64, userID int64) error {
	shop, err := s.shopClient.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, shopClient.ErrShopNotFound) {
			s.logger.Warn("checkManagerAccess: shop id=%d not found", shopID)
			return ErrShopNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get shop id=%d: %v", shopID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get shop: %v", ErrInternal, err)
	}

	if !shop.HasManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of shop=%d", userID, shopID)
		return ErrAccessDenied
	}

	return nil
}
