package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	scheduleRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/schedule"
	"github.com/sgurenkov/VLM-BookingService/internal/infra/storage/servicecat"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
	"github.com/sgurenkov/VLM-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetConfirmedByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeScheduleRepo struct {
	override *domain.DateOverride
	rule     *domain.WeeklyHoursRule
}

func (f *fakeScheduleRepo) GetOverrideByDate(_ context.Context, _ time.Time) (*domain.DateOverride, error) {
	if f.override == nil {
		return nil, scheduleRepo.ErrOverrideNotFound
	}
	return f.override, nil
}

func (f *fakeScheduleRepo) GetActiveRuleByWeekday(_ context.Context, _ int) (*domain.WeeklyHoursRule, error) {
	if f.rule == nil {
		return nil, scheduleRepo.ErrRuleNotFound
	}
	return f.rule, nil
}

type fakeServiceRepo struct {
	svc *domain.Service
	err error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.svc, f.err
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestConverter(t *testing.T) *civiltime.Converter {
	t.Helper()
	conv, err := civiltime.NewConverter("Europe/Moscow")
	require.NoError(t, err)
	return conv
}

func activeService() *domain.Service {
	return &domain.Service{ID: 1, Name: "Массаж спины", DurationMinutes: 40, Price: 2500, IsActive: true}
}

// mondayRule окно 08:00-20:00 на понедельник
func mondayRule() *domain.WeeklyHoursRule {
	return &domain.WeeklyHoursRule{ID: 1, Weekday: 0, OpenTime: "08:00", CloseTime: "20:00", IsActive: true}
}

func newUseCase(
	bookings *fakeBookingRepo,
	schedule *fakeScheduleRepo,
	services *fakeServiceRepo,
	conv *civiltime.Converter,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, schedule, services, conv, 120, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecute_ServiceNotFound(t *testing.T) {
	conv := newTestConverter(t)
	date, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)

	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: mondayRule()},
		&fakeServiceRepo{err: servicecat.ErrServiceNotFound},
		conv,
		time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC),
	)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 99, Date: date})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveServiceHidden(t *testing.T) {
	conv := newTestConverter(t)
	date, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)

	svc := activeService()
	svc.IsActive = false

	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: mondayRule()},
		&fakeServiceRepo{svc: svc},
		conv,
		time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC),
	)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_SameDayAlwaysEmpty(t *testing.T) {
	conv := newTestConverter(t)
	// Понедельник с открытым окном, но запрос день в день
	date, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)

	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: mondayRule()},
		&fakeServiceRepo{svc: activeService()},
		conv,
		time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateEmpty(t *testing.T) {
	conv := newTestConverter(t)
	date, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)

	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: mondayRule()},
		&fakeServiceRepo{svc: activeService()},
		conv,
		time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoRuleMeansClosed(t *testing.T) {
	conv := newTestConverter(t)
	date, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)

	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{},
		&fakeServiceRepo{svc: activeService()},
		conv,
		time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedOverrideShadowsRule(t *testing.T) {
	conv := newTestConverter(t)
	date, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)

	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{
			rule:     mondayRule(),
			override: &domain.DateOverride{Date: date, Kind: domain.OverrideClosed},
		},
		&fakeServiceRepo{svc: activeService()},
		conv,
		time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_CustomHoursOverrideShadowsRule(t *testing.T) {
	conv := newTestConverter(t)
	date, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)

	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{
			rule: mondayRule(),
			override: &domain.DateOverride{
				Date:      date,
				Kind:      domain.OverrideCustomHours,
				OpenTime:  ptr.Ptr(civiltime.Clock("12:00")),
				CloseTime: ptr.Ptr(civiltime.Clock("14:00")),
			},
		},
		&fakeServiceRepo{svc: activeService()},
		conv,
		time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	require.NoError(t, err)

	// Окно 12:00-14:00 вместо недельного 08:00-20:00:
	// кандидаты 12:00..13:15 с шагом 15 минут, слот 40 минут
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, civiltime.Clock("12:00"), resp.Slots[0].StartTime)
	assert.Equal(t, civiltime.Clock("13:15"), resp.Slots[len(resp.Slots)-1].StartTime)
	assert.Len(t, resp.Slots, 6)
}

func TestExecute_FullMonday(t *testing.T) {
	conv := newTestConverter(t)
	// 2025-06-02 понедельник
	date, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)

	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rule: mondayRule()},
		&fakeServiceRepo{svc: activeService()},
		conv,
		time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 46)
	assert.Equal(t, civiltime.Clock("08:00"), resp.Slots[0].StartTime)
	assert.Equal(t, civiltime.Clock("19:15"), resp.Slots[len(resp.Slots)-1].StartTime)
	assert.Equal(t, "Массаж спины", resp.ServiceName)
	assert.Equal(t, 40, resp.DurationMinutes)
}

func TestExecute_ExistingBookingExcludesSlots(t *testing.T) {
	conv := newTestConverter(t)
	date, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)

	bookingStart, err := conv.Combine(date, "10:00")
	require.NoError(t, err)

	uc := newUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			{
				StartAt: bookingStart,
				EndAt:   bookingStart.Add(40 * time.Minute),
				Status:  domain.StatusConfirmed,
			},
		}},
		&fakeScheduleRepo{rule: mondayRule()},
		&fakeServiceRepo{svc: activeService()},
		conv,
		time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.False(t, slot.StartAt.Before(bookingStart.Add(40*time.Minute)) && slot.EndAt.After(bookingStart),
			"slot %s overlaps existing booking", slot.StartTime)
	}

	// Занятый интервал 10:00-10:40 выбивает кандидатов 09:30..10:30,
	// граничные 09:15 (конец 09:55) и 10:45 остаются
	starts := make(map[civiltime.Clock]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		starts[slot.StartTime] = true
	}
	assert.True(t, starts["09:15"])
	assert.False(t, starts["09:30"])
	assert.False(t, starts["10:00"])
	assert.False(t, starts["10:30"])
	assert.True(t, starts["10:45"])
}
