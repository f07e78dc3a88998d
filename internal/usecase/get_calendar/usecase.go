package get_calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	"github.com/sgurenkov/VLM-BookingService/internal/usecase/get_availability"
)

// maxConcurrentDays предел параллельных расчетов дней внутри одного запроса
const maxConcurrentDays = 8

// UseCase use case для календаря доступности на диапазон дат.
// Каждый день считается независимо, поэтому дни разгребаются параллельно.
// Ошибка любого дня отменяет весь запрос, частичный календарь не отдается.
type UseCase struct {
	availability AvailabilityProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityProvider, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	dates, err := expandRange(req)
	if err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetCalendar: service=%d, days=%d", req.ServiceID, len(dates))

	days := make([]Day, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDays)

	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			resp, err := uc.availability.Execute(gctx, &get_availability.Request{
				ServiceID: req.ServiceID,
				Date:      date,
			})
			if err != nil {
				return err
			}

			days[i] = Day{
				Date:      date,
				Available: len(resp.Slots) > 0,
				SlotCount: len(resp.Slots),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Response{ServiceID: req.ServiceID, Days: days}, nil
}

// expandRange валидирует диапазон и разворачивает его в список дат
func expandRange(req *Request) ([]time.Time, error) {
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidRange)
	}

	dates := make([]time.Time, 0)
	for d := req.From; !d.After(req.To); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
		if len(dates) > domain.MaxCalendarRangeDays {
			return nil, fmt.Errorf("%w: at most %d days", ErrRangeTooLarge, domain.MaxCalendarRangeDays)
		}
	}

	return dates, nil
}
