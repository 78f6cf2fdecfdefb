package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// UpdateRulesRequest запрос на обновление правил бронирования салона
type UpdateRulesRequest struct {
	UserID               int64 `json:"userId"`
	BaseBufferMinutes    int   `json:"baseBufferMinutes"`
	MaxExtensionMinutes  int   `json:"maxExtensionMinutes"`
	ExtensionStepMinutes int   `json:"extensionStepMinutes"`
}

// Response модели

// RulesResponse ответ с правилами бронирования салона
type RulesResponse struct {
	ShopID               int64      `json:"shopId"`
	BaseBufferMinutes    int        `json:"baseBufferMinutes"`
	MaxExtensionMinutes  int        `json:"maxExtensionMinutes"`
	ExtensionStepMinutes int        `json:"extensionStepMinutes"`
	IsDefault            bool       `json:"isDefault"` // Правила не настроены, применяются дефолтные
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainRules конвертирует доменную модель в response
func FromDomainRules(rules *domain.BookingRules, isDefault bool) *RulesResponse {
	resp := &RulesResponse{
		ShopID:               rules.ShopID,
		BaseBufferMinutes:    rules.BaseBufferMinutes,
		MaxExtensionMinutes:  rules.MaxExtensionMinutes,
		ExtensionStepMinutes: rules.ExtensionStepMinutes,
		IsDefault:            isDefault,
	}
	if !isDefault && !rules.UpdatedAt.IsZero() {
		resp.UpdatedAt = &rules.UpdatedAt
	}
	return resp
}
