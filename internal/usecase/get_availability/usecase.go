package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	scheduleRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/schedule"
	"github.com/sgurenkov/VLM-BookingService/internal/infra/storage/servicecat"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	bookingRepo     BookingRepository
	scheduleRepo    ScheduleRepository
	serviceRepo     ServiceRepository
	converter       *civiltime.Converter
	leadTimeMinutes int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	serviceRepo ServiceRepository,
	converter *civiltime.Converter,
	leadTimeMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		scheduleRepo:    scheduleRepo,
		serviceRepo:     serviceRepo,
		converter:       converter,
		leadTimeMinutes: leadTimeMinutes,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: service=%d, date=%s",
		req.ServiceID, uc.converter.FormatDate(req.Date))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу, неактивная услуга недоступна для записи
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, servicecat.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailability: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	emptyResponse := &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           []Slot{},
	}

	// 3. Записи день в день не принимаются, прошедшие даты тем более.
	// Это не ошибка запроса: на такие даты просто нет доступных слотов.
	now := uc.timeProvider.Now()
	if uc.converter.IsDateInPast(req.Date, now) || uc.converter.SameCivilDay(req.Date, now) {
		uc.logger.Info("GetAvailability: date %s is not bookable (past or same day)",
			uc.converter.FormatDate(req.Date))
		return emptyResponse, nil
	}

	// 4. Разрешаем рабочие часы: переопределение даты полностью затеняет
	// недельное правило
	window, open, err := uc.resolveHours(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	if !open {
		uc.logger.Info("GetAvailability: closed on %s", uc.converter.FormatDate(req.Date))
		return emptyResponse, nil
	}

	// 5. Генерируем кандидатов в гражданском времени
	candidates, err := generateCandidateStarts(window, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	// 6. Конвертируем в абсолютные моменты
	slots, err := materializeSlots(uc.converter, req.Date, candidates, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to materialize slots: %v", err)
		return nil, fmt.Errorf("%w: failed to materialize slots: %v", ErrInternal, err)
	}

	// 7. Фильтруем по минимальному времени до записи
	slots = filterByLeadTime(slots, now, uc.leadTimeMinutes)

	// 8. Убираем слоты, пересекающиеся с подтвержденными бронированиями
	bookings, err := uc.bookingRepo.GetConfirmedByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	slots = excludeOverlapping(slots, bookings)

	uc.logger.Info("GetAvailability: %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, uc.converter.FormatDate(req.Date))

	return &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

// resolveHours возвращает эффективное окно рабочих часов на дату.
// Отсутствие переопределения и правила - это закрытый день, не ошибка.
func (uc *UseCase) resolveHours(ctx context.Context, date time.Time) (domain.HoursWindow, bool, error) {
	override, err := uc.scheduleRepo.GetOverrideByDate(ctx, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("GetAvailability: failed to get override for %s: %v",
			uc.converter.FormatDate(date), err)
		return domain.HoursWindow{}, false, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}

	rule, err := uc.scheduleRepo.GetActiveRuleByWeekday(ctx, uc.converter.WeekdayIndex(date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrRuleNotFound) {
		uc.logger.Error("GetAvailability: failed to get weekly rule for %s: %v",
			uc.converter.FormatDate(date), err)
		return domain.HoursWindow{}, false, fmt.Errorf("%w: failed to get weekly rule: %v", ErrInternal, err)
	}

	window, open := domain.EffectiveHours(override, rule)
	return window, open, nil
}
