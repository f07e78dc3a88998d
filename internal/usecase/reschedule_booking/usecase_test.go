package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	bookingRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/schedule"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

type fakeBookingRepo struct {
	booking     *domain.Booking
	dayBookings []*domain.Booking
	updateErr   error
	updated     bool
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetConfirmedByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.dayBookings, nil
}

func (f *fakeBookingRepo) UpdateInterval(_ context.Context, _ int64, _, _, _ time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = true
	return nil
}

type fakeScheduleRepo struct {
	rule *domain.WeeklyHoursRule
}

func (f *fakeScheduleRepo) GetOverrideByDate(_ context.Context, _ time.Time) (*domain.DateOverride, error) {
	return nil, scheduleRepo.ErrOverrideNotFound
}

func (f *fakeScheduleRepo) GetActiveRuleByWeekday(_ context.Context, _ int) (*domain.WeeklyHoursRule, error) {
	if f.rule == nil {
		return nil, scheduleRepo.ErrRuleNotFound
	}
	return f.rule, nil
}

type fakeAuditRepo struct {
	entries []string
}

func (f *fakeAuditRepo) Insert(_ context.Context, _ int64, action, _ string) error {
	f.entries = append(f.entries, action)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	subjects []string
}

func (f *fakePublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

type fakeRecorder struct {
	conflicts int
}

func (f *fakeRecorder) IncBookingConflict() { f.conflicts++ }

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

type env struct {
	uc        *UseCase
	bookings  *fakeBookingRepo
	audit     *fakeAuditRepo
	publisher *fakePublisher
	recorder  *fakeRecorder
	conv      *civiltime.Converter
}

func newEnv(t *testing.T) *env {
	t.Helper()

	conv, err := civiltime.NewConverter("Europe/Moscow")
	require.NoError(t, err)

	oldDate, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)
	oldStart, err := conv.Combine(oldDate, "10:00")
	require.NoError(t, err)

	bookings := &fakeBookingRepo{
		booking: &domain.Booking{
			ID:        5,
			ServiceID: 1,
			CivilDate: oldDate,
			StartAt:   oldStart,
			EndAt:     oldStart.Add(40 * time.Minute),
			Status:    domain.StatusConfirmed,
		},
	}
	audit := &fakeAuditRepo{}
	publisher := &fakePublisher{}
	recorder := &fakeRecorder{}

	uc := NewUseCase(
		bookings,
		&fakeScheduleRepo{rule: &domain.WeeklyHoursRule{Weekday: 1, OpenTime: "08:00", CloseTime: "20:00", IsActive: true}},
		audit,
		fakeTxManager{},
		conv,
		publisher,
		recorder,
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)}

	return &env{uc: uc, bookings: bookings, audit: audit, publisher: publisher, recorder: recorder, conv: conv}
}

func TestExecute_HappyPath(t *testing.T) {
	e := newEnv(t)
	newDate, err := e.conv.ParseDate("2025-06-03")
	require.NoError(t, err)

	resp, err := e.uc.Execute(context.Background(), &Request{BookingID: 5, Date: newDate, StartTime: "12:00"})
	require.NoError(t, err)

	assert.True(t, e.bookings.updated)
	assert.Equal(t, civiltime.Clock("12:00"), resp.StartTime)
	// Длительность исходной брони сохраняется
	assert.True(t, resp.EndAt.Equal(resp.StartAt.Add(40*time.Minute)))
	assert.Equal(t, []string{domain.ActionBookingRescheduled}, e.audit.entries)
	assert.Equal(t, []string{"bookings.rescheduled"}, e.publisher.subjects)
}

func TestExecute_NotFound(t *testing.T) {
	e := newEnv(t)
	newDate, err := e.conv.ParseDate("2025-06-03")
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), &Request{BookingID: 99, Date: newDate, StartTime: "12:00"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CancelledBooking(t *testing.T) {
	e := newEnv(t)
	e.bookings.booking.Status = domain.StatusCancelled
	newDate, err := e.conv.ParseDate("2025-06-03")
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), &Request{BookingID: 5, Date: newDate, StartTime: "12:00"})
	assert.ErrorIs(t, err, ErrBookingCancelled)
}

func TestExecute_OwnSlotIgnoredInOverlapCheck(t *testing.T) {
	e := newEnv(t)
	// Перенос внутри того же дня: собственная бронь лежит в выборке дня
	e.bookings.dayBookings = []*domain.Booking{e.bookings.booking}
	sameDate := e.bookings.booking.CivilDate

	resp, err := e.uc.Execute(context.Background(), &Request{BookingID: 5, Date: sameDate, StartTime: "10:15"})
	require.NoError(t, err)
	assert.True(t, e.bookings.updated)
	assert.Equal(t, civiltime.Clock("10:15"), resp.StartTime)
}

func TestExecute_ConflictWithOtherBooking(t *testing.T) {
	e := newEnv(t)
	newDate, err := e.conv.ParseDate("2025-06-03")
	require.NoError(t, err)
	otherStart, err := e.conv.Combine(newDate, "12:00")
	require.NoError(t, err)

	e.bookings.dayBookings = []*domain.Booking{
		{ID: 6, StartAt: otherStart, EndAt: otherStart.Add(40 * time.Minute), Status: domain.StatusConfirmed},
	}

	_, err = e.uc.Execute(context.Background(), &Request{BookingID: 5, Date: newDate, StartTime: "12:15"})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 1, e.recorder.conflicts)
}

func TestExecute_ConstraintConflictMapped(t *testing.T) {
	e := newEnv(t)
	e.bookings.updateErr = bookingRepo.ErrSlotConflict
	newDate, err := e.conv.ParseDate("2025-06-03")
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), &Request{BookingID: 5, Date: newDate, StartTime: "12:00"})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_PastDate(t *testing.T) {
	e := newEnv(t)
	pastDate, err := e.conv.ParseDate("2025-05-01")
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), &Request{BookingID: 5, Date: pastDate, StartTime: "12:00"})
	assert.ErrorIs(t, err, ErrDateNotBookable)
}
