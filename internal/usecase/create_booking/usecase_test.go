package create_booking

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
	"github.com/sgurenkov/VLM-BookingService/pkg/phone"
)

type fakeBookingRepo struct {
	existing  []*domain.Booking
	createErr error
	created   *domain.Booking
	// stored подменяет результат GetByID для проверки контрольного чтения
	stored *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b := *booking
	b.ID = 42
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = &b
	return &b, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.stored != nil {
		return f.stored, nil
	}
	if f.created != nil && f.created.ID == id {
		return f.created, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetConfirmedByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeCustomerRepo struct{}

func (fakeCustomerRepo) Upsert(_ context.Context, name, phone string) (*domain.Customer, error) {
	return &domain.Customer{ID: 7, Name: name, Phone: phone}, nil
}

type fakeServiceRepo struct {
	svc *domain.Service
	err error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.svc, f.err
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

type fakeAuditRepo struct {
	entries []string
	err     error
}

func (f *fakeAuditRepo) Insert(_ context.Context, _ int64, action, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, action)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	subjects []string
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	return nil
}

type fakeRecorder struct {
	created   int
	conflicts int
}

func (f *fakeRecorder) IncBookingCreated(string) { f.created++ }
func (f *fakeRecorder) IncBookingConflict()      { f.conflicts++ }

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
}

func newEnv(t *testing.T) *env {
	t.Helper()

	conv, err := civiltime.NewConverter("Europe/Moscow")
	require.NoError(t, err)

	bookings := &fakeBookingRepo{}
	audit := &fakeAuditRepo{}
	publisher := &fakePublisher{}
	recorder := &fakeRecorder{}

	uc := NewUseCase(
		bookings,
		fakeCustomerRepo{},
		&fakeServiceRepo{svc: &domain.Service{ID: 1, Name: "Массаж спины", DurationMinutes: 40, Price: 2500, IsActive: true}},
		&fakeScheduleRepo{rule: &domain.WeeklyHoursRule{Weekday: 0, OpenTime: "08:00", CloseTime: "20:00", IsActive: true}},
		audit,
		fakeTxManager{},
		conv,
		phone.NewNormalizer("RU"),
		publisher,
		recorder,
		120,
		nopLogger{},
	)
	// Пятница до понедельника 2025-06-02
	uc.timeProvider = &fixedTime{now: time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)}

	return &env{uc: uc, bookings: bookings, audit: audit, publisher: publisher, recorder: recorder}
}

func validRequest(t *testing.T, e *env) *Request {
	t.Helper()
	date, err := e.uc.converter.ParseDate("2025-06-02")
	require.NoError(t, err)
	return &Request{
		ServiceID:    1,
		Date:         date,
		StartTime:    "10:00",
		CustomerName: "Анна Петрова",
		Phone:        "8 916 123-45-67",
		CreatedVia:   domain.CreatedViaWebsite,
	}
}

func TestExecute_HappyPath(t *testing.T) {
	e := newEnv(t)

	resp, err := e.uc.Execute(context.Background(), validRequest(t, e))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, civiltime.Clock("10:00"), resp.StartTime)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "+79161234567", resp.CustomerPhone)
	assert.Equal(t, 40, resp.DurationMinutes)
	assert.NotEmpty(t, resp.ManageToken)
	assert.True(t, resp.EndAt.Equal(resp.StartAt.Add(40*time.Minute)))

	assert.Equal(t, []string{domain.ActionBookingCreated}, e.audit.entries)
	assert.Equal(t, []string{"bookings.created"}, e.publisher.subjects)
	assert.Equal(t, 1, e.recorder.created)
	assert.Zero(t, e.recorder.conflicts)
}

func TestExecute_HoneypotFilled(t *testing.T) {
	e := newEnv(t)
	req := validRequest(t, e)
	req.Website = "http://spam.example"

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBotDetected)
}

func TestExecute_InvalidPhone(t *testing.T) {
	e := newEnv(t)
	req := validRequest(t, e)
	req.Phone = "not a phone"

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestExecute_SameDayRejected(t *testing.T) {
	e := newEnv(t)
	e.uc.timeProvider = &fixedTime{now: time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC)}

	_, err := e.uc.Execute(context.Background(), validRequest(t, e))
	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestExecute_ClosedDate(t *testing.T) {
	e := newEnv(t)
	date, err := e.uc.converter.ParseDate("2025-06-02")
	require.NoError(t, err)
	e.uc.scheduleRepo = &fakeScheduleRepo{
		rule:     &domain.WeeklyHoursRule{Weekday: 0, OpenTime: "08:00", CloseTime: "20:00", IsActive: true},
		override: &domain.DateOverride{Date: date, Kind: domain.OverrideClosed},
	}

	_, err = e.uc.Execute(context.Background(), validRequest(t, e))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestExecute_OffGridStart(t *testing.T) {
	e := newEnv(t)
	req := validRequest(t, e)
	req.StartTime = "10:05"

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOffGrid)
}

func TestExecute_SlotPastClosing(t *testing.T) {
	e := newEnv(t)
	req := validRequest(t, e)
	req.StartTime = "19:30"

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_OverlapInsideTransaction(t *testing.T) {
	e := newEnv(t)
	date, err := e.uc.converter.ParseDate("2025-06-02")
	require.NoError(t, err)
	start, err := e.uc.converter.Combine(date, "09:45")
	require.NoError(t, err)

	e.bookings.existing = []*domain.Booking{
		{ID: 1, StartAt: start, EndAt: start.Add(40 * time.Minute), Status: domain.StatusConfirmed},
	}

	_, err = e.uc.Execute(context.Background(), validRequest(t, e))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 1, e.recorder.conflicts)
	assert.Zero(t, e.recorder.created)
}

func TestExecute_ConstraintConflictMapped(t *testing.T) {
	e := newEnv(t)
	e.bookings.createErr = bookingRepo.ErrSlotConflict

	_, err := e.uc.Execute(context.Background(), validRequest(t, e))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 1, e.recorder.conflicts)
}

func TestExecute_VerificationMismatch(t *testing.T) {
	e := newEnv(t)
	date, err := e.uc.converter.ParseDate("2025-06-02")
	require.NoError(t, err)
	wrongStart, err := e.uc.converter.Combine(date, "11:00")
	require.NoError(t, err)

	// Контрольное чтение возвращает чужой интервал
	e.bookings.stored = &domain.Booking{
		ID:      42,
		StartAt: wrongStart,
		EndAt:   wrongStart.Add(40 * time.Minute),
		Status:  domain.StatusConfirmed,
	}

	_, err = e.uc.Execute(context.Background(), validRequest(t, e))
	assert.ErrorIs(t, err, ErrWriteVerification)
}

func TestExecute_AuditFailureDoesNotFailBooking(t *testing.T) {
	e := newEnv(t)
	e.audit.err = assert.AnError
	e.publisher.err = assert.AnError

	resp, err := e.uc.Execute(context.Background(), validRequest(t, e))
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 1, e.recorder.created)
}
