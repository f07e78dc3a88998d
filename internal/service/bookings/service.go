package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	bookingRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/booking"
	"github.com/sgurenkov/VLM-BookingService/internal/service/bookings/models"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
	"github.com/sgurenkov/VLM-BookingService/pkg/events"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	auditRepo   AuditRepository
	publisher   EventPublisher
	converter   *civiltime.Converter
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	publisher EventPublisher,
	converter *civiltime.Converter,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		auditRepo:   auditRepo,
		publisher:   publisher,
		converter:   converter,
		logger:      logger,
	}
}

// GetByIDWithToken получает бронирование по ID и токену управления.
// Клиент без аккаунта управляет бронью по ссылке с токеном.
// Неверный токен неотличим от несуществующей брони, чтобы не раскрывать,
// какие ID заняты.
func (s *Service) GetByIDWithToken(ctx context.Context, id int64, manageToken string) (*models.BookingResponse, error) {
	s.logger.Info("GetByIDWithToken: fetching booking id=%d", id)

	if manageToken == "" {
		return nil, fmt.Errorf("%w: manage token is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByIDAndToken(ctx, id, manageToken)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByIDWithToken: booking id=%d not found or token mismatch", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByIDWithToken: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByIDWithToken - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking, s.converter), nil
}

// GetByID получает бронирование по ID для администратора
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking, s.converter), nil
}

// List получает бронирования с фильтрацией по периоду и статусу.
// Доступно только администратору.
//
// Примеры использования:
// - Брони на дату: StartDate и EndDate указывают на одну дату
// - Брони за период: StartDate и EndDate указывают на разные даты
// - Включая отмененные: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			s.converter.FormatDate(*req.StartDate), s.converter.FormatDate(*req.EndDate))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, s.converter), nil
}

// Cancel отменяет бронирование. Запись остается в истории со статусом
// cancelled, слот немедленно освобождается для новых броней.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	// Аудит и событие best-effort: отмена уже состоялась
	if err := s.auditRepo.Insert(ctx, bookingID, domain.ActionBookingCancelled, "reason="+reason); err != nil {
		s.logger.Warn("Cancel: failed to write audit entry for booking id=%d: %v", bookingID, err)
	}

	event := map[string]interface{}{
		"bookingId": bookingID,
		"serviceId": booking.ServiceID,
		"startAt":   booking.StartAt.Format(time.RFC3339),
		"endAt":     booking.EndAt.Format(time.RFC3339),
		"phone":     booking.CustomerPhone,
		"reason":    reason,
	}
	if err := s.publisher.Publish(ctx, events.SubjectBookingCancelled, event); err != nil {
		s.logger.Warn("Cancel: failed to publish %s for booking id=%d: %v",
			events.SubjectBookingCancelled, bookingID, err)
	}

	return nil
}
