package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/dataprovider"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case получения доступных слотов на дату
type UseCase struct {
	generator    SlotGenerator
	settingsRepo SettingsRepository
	slotCache    SlotCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	generator SlotGenerator,
	settingsRepo SettingsRepository,
	slotCache SlotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		generator:    generator,
		settingsRepo: settingsRepo,
		slotCache:    slotCache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет генерацию списка доступных слотов
// Результат кэшируется; кэш инвалидируется при изменении записей на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, staff=%d",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)

	// 2. Пробуем кэш
	if cached, ok := uc.slotCache.Get(ctx, req.ServiceID, dateStr, req.StaffID); ok {
		uc.logger.Info("GetAvailableSlots: cache hit for service=%d, date=%s, staff=%d (%d slots)",
			req.ServiceID, dateStr, req.StaffID, len(cached))
		return toResponse(req.ServiceID, dateStr, cached), nil
	}

	// 3. Настройки планирования
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	// 4. Генерируем слоты
	now := uc.timeProvider.Now().In(settings.Location())
	slots, err := uc.generator.Generate(ctx, req.ServiceID, req.Date, req.StaffID, settings, now)
	if err != nil {
		if errors.Is(err, dataprovider.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: generation failed: %v", err)
		return nil, fmt.Errorf("%w: slot generation failed: %v", ErrInternal, err)
	}

	// 5. Кэшируем результат
	uc.slotCache.Set(ctx, req.ServiceID, dateStr, req.StaffID, slots)

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, dateStr)
	return toResponse(req.ServiceID, dateStr, slots), nil
}

func toResponse(serviceID int64, date string, slots []types.TimeString) *Response {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return &Response{
		ServiceID: serviceID,
		Date:      date,
		Slots:     out,
	}
}
