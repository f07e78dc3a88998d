package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	scheduleRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/schedule"
	"github.com/sgurenkov/VLM-BookingService/internal/service/schedule/models"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
	"github.com/sgurenkov/VLM-BookingService/pkg/ptr"
)

// Service сервис для управления расписанием работы
type Service struct {
	scheduleRepo ScheduleRepository
	converter    *civiltime.Converter
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	converter *civiltime.Converter,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		converter:    converter,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetSchedule возвращает недельные правила и переопределения начиная
// с сегодняшней даты. Прошедшие переопределения админке не нужны.
func (s *Service) GetSchedule(ctx context.Context) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule")

	rules, err := s.scheduleRepo.ListRules(ctx)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list rules: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to list rules: %v", ErrInternal, err)
	}

	today := s.converter.DateOf(s.timeProvider.Now())
	overrides, err := s.scheduleRepo.ListOverridesFrom(ctx, today)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list overrides: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to list overrides: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(rules, overrides, s.converter), nil
}

// UpsertWeeklyRule создает или обновляет недельное правило.
// На каждый день недели живет не больше одного активного правила.
func (s *Service) UpsertWeeklyRule(ctx context.Context, req *models.UpsertWeeklyRuleRequest) (*models.WeeklyRuleResponse, error) {
	s.logger.Info("UpsertWeeklyRule: weekday=%d, window=%s-%s, active=%t",
		req.Weekday, req.OpenTime, req.CloseTime, req.IsActive)

	if req.Weekday < domain.MinWeekday || req.Weekday > domain.MaxWeekday {
		s.logger.Warn("UpsertWeeklyRule: weekday %d out of range", req.Weekday)
		return nil, fmt.Errorf("%w: weekday must be between %d and %d (Monday = 0)",
			ErrInvalidWeekday, domain.MinWeekday, domain.MaxWeekday)
	}

	open, close, err := parseWindow(req.OpenTime, req.CloseTime)
	if err != nil {
		s.logger.Warn("UpsertWeeklyRule: invalid window: %v", err)
		return nil, err
	}

	rule := &domain.WeeklyHoursRule{
		Weekday:   req.Weekday,
		OpenTime:  open,
		CloseTime: close,
		IsActive:  req.IsActive,
	}

	saved, err := s.scheduleRepo.UpsertRule(ctx, rule)
	if err != nil {
		s.logger.Error("UpsertWeeklyRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertWeeklyRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertWeeklyRule: saved rule id=%d for weekday=%d", saved.ID, saved.Weekday)
	return models.FromDomainRule(saved), nil
}

// UpsertOverride создает или обновляет переопределение даты.
// closed не несет окна, custom_hours требует корректное окно.
func (s *Service) UpsertOverride(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("UpsertOverride: date=%s, kind=%s", req.Date, req.Kind)

	date, err := s.converter.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("UpsertOverride: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	override := &domain.DateOverride{
		Date: date,
		Kind: domain.OverrideKind(req.Kind),
	}

	switch override.Kind {
	case domain.OverrideClosed:
		if req.OpenTime != nil || req.CloseTime != nil {
			s.logger.Warn("UpsertOverride: closed override must not carry a window")
			return nil, fmt.Errorf("%w: closed override must not carry open/close times", ErrInvalidInput)
		}
	case domain.OverrideCustomHours:
		if req.OpenTime == nil || req.CloseTime == nil {
			s.logger.Warn("UpsertOverride: custom_hours override requires a window")
			return nil, fmt.Errorf("%w: custom_hours override requires open and close times", ErrInvalidInput)
		}
		open, close, err := parseWindow(*req.OpenTime, *req.CloseTime)
		if err != nil {
			s.logger.Warn("UpsertOverride: invalid window: %v", err)
			return nil, err
		}
		override.OpenTime = ptr.Ptr(open)
		override.CloseTime = ptr.Ptr(close)
	default:
		s.logger.Warn("UpsertOverride: unknown kind %q", req.Kind)
		return nil, fmt.Errorf("%w: kind must be closed or custom_hours", ErrInvalidInput)
	}

	saved, err := s.scheduleRepo.UpsertOverride(ctx, override)
	if err != nil {
		s.logger.Error("UpsertOverride: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertOverride: saved override id=%d for date=%s", saved.ID, req.Date)
	return models.FromDomainOverride(saved, s.converter), nil
}

// DeleteOverride удаляет переопределение даты, возвращая день недельному правилу
func (s *Service) DeleteOverride(ctx context.Context, rawDate string) error {
	s.logger.Info("DeleteOverride: date=%s", rawDate)

	date, err := s.converter.ParseDate(rawDate)
	if err != nil {
		s.logger.Warn("DeleteOverride: invalid date %q: %v", rawDate, err)
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if err := s.scheduleRepo.DeleteOverride(ctx, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override for %s not found", rawDate)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error: %v", err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: removed override for %s", rawDate)
	return nil
}

// parseWindow валидирует пару открытие/закрытие
func parseWindow(rawOpen, rawClose string) (civiltime.Clock, civiltime.Clock, error) {
	open, err := civiltime.ParseClock(rawOpen)
	if err != nil {
		return "", "", fmt.Errorf("%w: open time: %v", ErrInvalidWindow, err)
	}

	close, err := civiltime.ParseClock(rawClose)
	if err != nil {
		return "", "", fmt.Errorf("%w: close time: %v", ErrInvalidWindow, err)
	}

	if !open.IsBefore(close) {
		return "", "", fmt.Errorf("%w: open time must be before close time", ErrInvalidWindow)
	}

	return open, close, nil
}
