package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// Service сервис для работы с настройками планирования
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает текущие настройки планирования
// При отсутствии сохранённых настроек возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching scheduling settings")

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Get: no stored settings, returning defaults")
			return models.FromDomainSettings(domain.DefaultSchedulingSettings()), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update обновляет настройки планирования
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating scheduling settings")

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Update: settings not found")
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Применяем обновления к копии для валидации
	tempSettings := *settings
	req.ApplyToSettings(&tempSettings)

	if err := s.validateSettings(&tempSettings); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	req.ApplyToSettings(settings)

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Update: settings not found during update")
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated scheduling settings")
	return models.FromDomainSettings(settings), nil
}

// validateSettings валидирует параметры настроек
func (s *Service) validateSettings(settings *domain.SchedulingSettings) error {
	// slotLengthMinutes = 0 отключает генерацию слотов
	if settings.SlotLengthMinutes != 0 &&
		(settings.SlotLengthMinutes < domain.MinSlotLengthMinutes || settings.SlotLengthMinutes > domain.MaxSlotLengthMinutes) {
		return fmt.Errorf("%w: slotLengthMinutes must be 0 or between %d and %d",
			ErrInvalidInput, domain.MinSlotLengthMinutes, domain.MaxSlotLengthMinutes)
	}

	if settings.MinLeadMinutes < 0 || settings.MinLeadMinutes > domain.MinLeadMinutesLimit {
		return fmt.Errorf("%w: minLeadMinutes must be between 0 and %d", ErrInvalidInput, domain.MinLeadMinutesLimit)
	}

	if settings.CancellationLeadMinutes < 0 {
		return fmt.Errorf("%w: cancellationLeadMinutes must be non-negative", ErrInvalidInput)
	}

	if settings.BufferMinutes < 0 {
		return fmt.Errorf("%w: bufferMinutes must be non-negative", ErrInvalidInput)
	}

	if settings.MaxPersons < 1 || settings.MaxPersons > domain.MaxPersonsLimit {
		return fmt.Errorf("%w: maxPersons must be between 1 and %d", ErrInvalidInput, domain.MaxPersonsLimit)
	}

	switch settings.GroupPricing.Type {
	case domain.PricingPerPersonMultiply, domain.PricingFixedDiscountPerPerson, domain.PricingPercentageDiscountTotal:
	default:
		return fmt.Errorf("%w: unknown groupPricingType %q", ErrInvalidInput, settings.GroupPricing.Type)
	}

	if settings.GroupPricing.Amount < 0 {
		return fmt.Errorf("%w: groupPricingAmount must be non-negative", ErrInvalidInput)
	}

	if settings.MaxRecurrences < 1 || settings.MaxRecurrences > domain.MaxRecurrencesLimit {
		return fmt.Errorf("%w: maxRecurrences must be between 1 and %d", ErrInvalidInput, domain.MaxRecurrencesLimit)
	}

	if settings.IncompleteTimeoutMinutes < 1 {
		return fmt.Errorf("%w: incompleteTimeoutMinutes must be positive", ErrInvalidInput)
	}

	// Таймзона должна загружаться; "local" допустима как зона хоста
	if settings.BusinessTimezone != "" && settings.BusinessTimezone != "local" {
		if _, err := time.LoadLocation(settings.BusinessTimezone); err != nil {
			return fmt.Errorf("%w: unknown businessTimezone %q", ErrInvalidInput, settings.BusinessTimezone)
		}
	}

	return nil
}
