package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	bookingRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/schedule"
	"github.com/sgurenkov/VLM-BookingService/internal/infra/storage/servicecat"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
	"github.com/sgurenkov/VLM-BookingService/pkg/events"
	"github.com/sgurenkov/VLM-BookingService/pkg/phone"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	customerRepo    CustomerRepository
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	auditRepo       AuditRepository
	txManager       TransactionManager
	converter       *civiltime.Converter
	phones          PhoneNormalizer
	publisher       EventPublisher
	metrics         MetricsRecorder
	leadTimeMinutes int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	converter *civiltime.Converter,
	phones PhoneNormalizer,
	publisher EventPublisher,
	metrics MetricsRecorder,
	leadTimeMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		customerRepo:    customerRepo,
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		auditRepo:       auditRepo,
		txManager:       txManager,
		converter:       converter,
		phones:          phones,
		publisher:       publisher,
		metrics:         metrics,
		leadTimeMinutes: leadTimeMinutes,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Гонка за один слот разрешается дважды: сериализуемой транзакцией с
// блокировкой броней дня и exclusion constraint в самой таблице.
// Проигравший в любом случае получает ErrSlotConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s, via=%s",
		req.ServiceID, uc.converter.FormatDate(req.Date), req.StartTime, req.CreatedVia)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем телефон до канонического E.164
	canonicalPhone, err := uc.phones.Normalize(req.Phone)
	if err != nil {
		if errors.Is(err, phone.ErrInvalidPhone) {
			uc.logger.Warn("CreateBooking: invalid phone: %v", err)
			return nil, ErrInvalidPhone
		}
		uc.logger.Error("CreateBooking: failed to normalize phone: %v", err)
		return nil, fmt.Errorf("%w: failed to normalize phone: %v", ErrInternal, err)
	}

	// 3. Получаем услугу, запись возможна только на активную
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, servicecat.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Записи день в день и на прошедшие даты не принимаются
	now := uc.timeProvider.Now()
	if uc.converter.IsDateInPast(req.Date, now) || uc.converter.SameCivilDay(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is not bookable (past or same day)",
			uc.converter.FormatDate(req.Date))
		return nil, ErrDateNotBookable
	}

	// 5. Разрешаем рабочие часы и проверяем слот против окна и сетки
	window, open, err := uc.resolveHours(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	if !open {
		uc.logger.Warn("CreateBooking: closed on %s", uc.converter.FormatDate(req.Date))
		return nil, ErrClosed
	}
	if err := validateSlotInWindow(window, req.StartTime, service.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 6. Конвертируем в абсолютные моменты
	startAt, err := uc.converter.Combine(req.Date, req.StartTime)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to combine date and time: %v", err)
		return nil, fmt.Errorf("%w: failed to combine date and time: %v", ErrInternal, err)
	}
	endAt := startAt.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// 7. Минимальное время до записи
	if startAt.Before(now.Add(time.Duration(uc.leadTimeMinutes) * time.Minute)) {
		uc.logger.Warn("CreateBooking: slot at %s violates lead time", startAt)
		return nil, ErrDateNotBookable
	}

	var result *domain.Booking

	// 8. Сериализуемая транзакция: блокируем брони дня, проверяем
	// пересечения и вставляем
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dayBookings, err := uc.bookingRepo.GetConfirmedByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		for _, existing := range dayBookings {
			if existing.Overlaps(startAt, endAt) {
				uc.logger.Warn("CreateBooking: slot %s-%s overlaps booking id=%d",
					startAt, endAt, existing.ID)
				return ErrSlotConflict
			}
		}

		customer, err := uc.customerRepo.Upsert(txCtx, strings.TrimSpace(req.CustomerName), canonicalPhone)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to upsert customer: %v", err)
			return fmt.Errorf("%w: failed to upsert customer: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			ServiceID:  service.ID,
			CustomerID: customer.ID,
			CivilDate:  req.Date,
			StartAt:    startAt,
			EndAt:      endAt,
			Status:     domain.StatusConfirmed,
			CreatedVia: req.CreatedVia,
			Notes:      req.Notes,
			// Токен для управления бронью по ссылке без аккаунта
			ManageToken: uuid.NewString(),
			// Денормализация для истории: правки каталога и клиента
			// не переписывают прошлые брони
			ServiceName:   service.Name,
			ServicePrice:  service.Price,
			CustomerName:  customer.Name,
			CustomerPhone: customer.Phone,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: exclusion constraint rejected slot %s-%s", startAt, endAt)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			uc.metrics.IncBookingConflict()
		}
		return nil, err
	}

	// 9. Контрольное чтение после коммита: бронь должна читаться ровно
	// с тем интервалом, который мы записали
	if err := uc.verifyWrite(ctx, result.ID, startAt, endAt); err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	uc.metrics.IncBookingCreated(result.CreatedVia)

	// 10. Аудит и событие best-effort: их сбой не отменяет бронь
	uc.recordSideEffects(ctx, result)

	return &Response{
		ID:              result.ID,
		ServiceID:       result.ServiceID,
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Date:            result.CivilDate,
		StartTime:       uc.converter.ClockOf(result.StartAt),
		StartAt:         result.StartAt,
		EndAt:           result.EndAt,
		DurationMinutes: service.DurationMinutes,
		Status:          string(result.Status),
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhone,
		Notes:           result.Notes,
		ManageToken:     result.ManageToken,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// resolveHours возвращает эффективное окно рабочих часов на дату
func (uc *UseCase) resolveHours(ctx context.Context, date time.Time) (domain.HoursWindow, bool, error) {
	override, err := uc.scheduleRepo.GetOverrideByDate(ctx, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("CreateBooking: failed to get override: %v", err)
		return domain.HoursWindow{}, false, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}

	rule, err := uc.scheduleRepo.GetActiveRuleByWeekday(ctx, uc.converter.WeekdayIndex(date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrRuleNotFound) {
		uc.logger.Error("CreateBooking: failed to get weekly rule: %v", err)
		return domain.HoursWindow{}, false, fmt.Errorf("%w: failed to get weekly rule: %v", ErrInternal, err)
	}

	window, open := domain.EffectiveHours(override, rule)
	return window, open, nil
}

// verifyWrite перечитывает бронь после коммита и сверяет интервал
func (uc *UseCase) verifyWrite(ctx context.Context, id int64, startAt, endAt time.Time) error {
	stored, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("CreateBooking: VERIFICATION FAILED, booking id=%d unreadable after commit: %v", id, err)
		return fmt.Errorf("%w: booking id=%d: %v", ErrWriteVerification, id, err)
	}

	if stored.Status != domain.StatusConfirmed || !stored.StartAt.Equal(startAt) || !stored.EndAt.Equal(endAt) {
		uc.logger.Error("CreateBooking: VERIFICATION FAILED, booking id=%d stored as [%s, %s) status=%s, expected [%s, %s) confirmed",
			id, stored.StartAt, stored.EndAt, stored.Status, startAt, endAt)
		return fmt.Errorf("%w: booking id=%d interval mismatch", ErrWriteVerification, id)
	}

	return nil
}

// recordSideEffects пишет аудит и публикует событие, ошибки только логируются
func (uc *UseCase) recordSideEffects(ctx context.Context, booking *domain.Booking) {
	details := fmt.Sprintf("service=%d interval=[%s, %s) via=%s",
		booking.ServiceID, booking.StartAt.Format(time.RFC3339), booking.EndAt.Format(time.RFC3339), booking.CreatedVia)
	if err := uc.auditRepo.Insert(ctx, booking.ID, domain.ActionBookingCreated, details); err != nil {
		uc.logger.Warn("CreateBooking: failed to write audit entry for booking id=%d: %v", booking.ID, err)
	}

	event := map[string]interface{}{
		"bookingId":   booking.ID,
		"serviceId":   booking.ServiceID,
		"serviceName": booking.ServiceName,
		"startAt":     booking.StartAt.Format(time.RFC3339),
		"endAt":       booking.EndAt.Format(time.RFC3339),
		"phone":       booking.CustomerPhone,
		"createdVia":  booking.CreatedVia,
	}
	if err := uc.publisher.Publish(ctx, events.SubjectBookingCreated, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%d: %v",
			events.SubjectBookingCreated, booking.ID, err)
	}
}
