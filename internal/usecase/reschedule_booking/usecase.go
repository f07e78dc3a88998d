package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	bookingRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/schedule"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
	"github.com/sgurenkov/VLM-BookingService/pkg/events"
)

// UseCase use case для переноса бронирования администратором.
// Конфликт за новый слот разрешается так же, как при создании:
// сериализуемая транзакция плюс exclusion constraint.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	auditRepo    AuditRepository
	txManager    TransactionManager
	converter    *civiltime.Converter
	publisher    EventPublisher
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	converter *civiltime.Converter,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		converter:    converter,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, date=%s, time=%s",
		req.BookingID, uc.converter.FormatDate(req.Date), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование, переносить можно только подтвержденное
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if !booking.IsActive() {
		uc.logger.Warn("RescheduleBooking: booking id=%d is cancelled", req.BookingID)
		return nil, ErrBookingCancelled
	}

	// Длительность берем из самой брони: каталог мог измениться,
	// но перенос не меняет оплаченную услугу
	durationMinutes := int(booking.EndAt.Sub(booking.StartAt) / time.Minute)

	// 3. Прошедшие даты недоступны. Перенос делает администратор,
	// поэтому ограничение "не день в день" здесь не действует.
	now := uc.timeProvider.Now()
	if uc.converter.IsDateInPast(req.Date, now) {
		uc.logger.Warn("RescheduleBooking: date %s is in the past", uc.converter.FormatDate(req.Date))
		return nil, ErrDateNotBookable
	}

	// 4. Рабочие часы и сетка на новую дату
	window, open, err := uc.resolveHours(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	if !open {
		uc.logger.Warn("RescheduleBooking: closed on %s", uc.converter.FormatDate(req.Date))
		return nil, ErrClosed
	}
	if err := validateSlotInWindow(window, req.StartTime, durationMinutes); err != nil {
		uc.logger.Warn("RescheduleBooking: slot validation failed: %v", err)
		return nil, err
	}

	startAt, err := uc.converter.Combine(req.Date, req.StartTime)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to combine date and time: %v", err)
		return nil, fmt.Errorf("%w: failed to combine date and time: %v", ErrInternal, err)
	}
	endAt := startAt.Add(time.Duration(durationMinutes) * time.Minute)

	if startAt.Before(now) {
		uc.logger.Warn("RescheduleBooking: slot at %s is in the past", startAt)
		return nil, ErrDateNotBookable
	}

	// 5. Сериализуемая транзакция: блокируем брони нового дня, проверяем
	// пересечения без учета самой переносимой брони и обновляем интервал
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dayBookings, err := uc.bookingRepo.GetConfirmedByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		for _, existing := range dayBookings {
			if existing.ID == booking.ID {
				continue
			}
			if existing.Overlaps(startAt, endAt) {
				uc.logger.Warn("RescheduleBooking: slot %s-%s overlaps booking id=%d",
					startAt, endAt, existing.ID)
				return ErrSlotConflict
			}
		}

		if err := uc.bookingRepo.UpdateInterval(txCtx, booking.ID, req.Date, startAt, endAt); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				uc.logger.Warn("RescheduleBooking: exclusion constraint rejected slot %s-%s", startAt, endAt)
				return ErrSlotConflict
			}
			uc.logger.Error("RescheduleBooking: failed to update interval: %v", err)
			return fmt.Errorf("%w: failed to update interval: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			uc.metrics.IncBookingConflict()
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to [%s, %s)", booking.ID, startAt, endAt)

	// 6. Аудит и событие best-effort
	details := fmt.Sprintf("from=[%s, %s) to=[%s, %s)",
		booking.StartAt.Format(time.RFC3339), booking.EndAt.Format(time.RFC3339),
		startAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
	if err := uc.auditRepo.Insert(ctx, booking.ID, domain.ActionBookingRescheduled, details); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to write audit entry for booking id=%d: %v", booking.ID, err)
	}

	event := map[string]interface{}{
		"bookingId": booking.ID,
		"serviceId": booking.ServiceID,
		"startAt":   startAt.Format(time.RFC3339),
		"endAt":     endAt.Format(time.RFC3339),
		"phone":     booking.CustomerPhone,
	}
	if err := uc.publisher.Publish(ctx, events.SubjectBookingRescheduled, event); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish %s for booking id=%d: %v",
			events.SubjectBookingRescheduled, booking.ID, err)
	}

	return &Response{
		ID:        booking.ID,
		ServiceID: booking.ServiceID,
		Date:      req.Date,
		StartTime: req.StartTime,
		StartAt:   startAt,
		EndAt:     endAt,
		Status:    string(domain.StatusConfirmed),
	}, nil
}

// resolveHours возвращает эффективное окно рабочих часов на дату
func (uc *UseCase) resolveHours(ctx context.Context, date time.Time) (domain.HoursWindow, bool, error) {
	override, err := uc.scheduleRepo.GetOverrideByDate(ctx, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("RescheduleBooking: failed to get override: %v", err)
		return domain.HoursWindow{}, false, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}

	rule, err := uc.scheduleRepo.GetActiveRuleByWeekday(ctx, uc.converter.WeekdayIndex(date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrRuleNotFound) {
		uc.logger.Error("RescheduleBooking: failed to get weekly rule: %v", err)
		return domain.HoursWindow{}, false, fmt.Errorf("%w: failed to get weekly rule: %v", ErrInternal, err)
	}

	window, open := domain.EffectiveHours(override, rule)
	return window, open, nil
}
