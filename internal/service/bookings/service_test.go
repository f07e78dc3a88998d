package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	bookingRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/booking"
	"github.com/sgurenkov/VLM-BookingService/internal/service/bookings/models"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	list      []*domain.Booking
	cancelErr error
	cancelled bool
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByIDAndToken(_ context.Context, id int64, token string) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id || f.booking.ManageToken != token {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, _ string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = true
	return nil
}

type fakeAuditRepo struct {
	entries []string
}

func (f *fakeAuditRepo) Insert(_ context.Context, _ int64, action, _ string) error {
	f.entries = append(f.entries, action)
	return nil
}

type fakePublisher struct {
	subjects []string
}

func (f *fakePublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(t *testing.T, conv *civiltime.Converter) *domain.Booking {
	t.Helper()
	date, err := conv.ParseDate("2025-06-02")
	require.NoError(t, err)
	start, err := conv.Combine(date, "10:00")
	require.NoError(t, err)

	return &domain.Booking{
		ID:           5,
		ServiceID:    1,
		CivilDate:    date,
		StartAt:      start,
		EndAt:        start.Add(40 * time.Minute),
		Status:       domain.StatusConfirmed,
		CreatedVia:   domain.CreatedViaWebsite,
		ManageToken:  "token-123",
		ServiceName:  "Массаж спины",
		CustomerName: "Анна Петрова",
		CreatedAt:    time.Now(),
	}
}

type env struct {
	svc       *Service
	repo      *fakeBookingRepo
	audit     *fakeAuditRepo
	publisher *fakePublisher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	conv, err := civiltime.NewConverter("Europe/Moscow")
	require.NoError(t, err)

	repo := &fakeBookingRepo{booking: testBooking(t, conv)}
	audit := &fakeAuditRepo{}
	publisher := &fakePublisher{}

	return &env{
		svc:       NewService(repo, audit, publisher, conv, nopLogger{}),
		repo:      repo,
		audit:     audit,
		publisher: publisher,
	}
}

func TestGetByIDWithToken_Valid(t *testing.T) {
	e := newEnv(t)

	resp, err := e.svc.GetByIDWithToken(context.Background(), 5, "token-123")
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, 40, resp.DurationMinutes)
}

func TestGetByIDWithToken_WrongToken(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.GetByIDWithToken(context.Background(), 5, "wrong")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByIDWithToken_EmptyToken(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.GetByIDWithToken(context.Background(), 5, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_StatusFilter(t *testing.T) {
	e := newEnv(t)
	e.repo.list = []*domain.Booking{e.repo.booking}

	status := "confirmed"
	resp, err := e.svc.List(context.Background(), &models.ListBookingsRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	bad := "pending"
	_, err = e.svc.List(context.Background(), &models.ListBookingsRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_HappyPath(t *testing.T) {
	e := newEnv(t)

	err := e.svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{Reason: "клиент попросил"})
	require.NoError(t, err)

	assert.True(t, e.repo.cancelled)
	assert.Equal(t, []string{domain.ActionBookingCancelled}, e.audit.entries)
	assert.Equal(t, []string{"bookings.cancelled"}, e.publisher.subjects)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	e := newEnv(t)
	e.repo.booking.Status = domain.StatusCancelled

	err := e.svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{Reason: "повтор"})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_EmptyReason(t *testing.T) {
	e := newEnv(t)

	err := e.svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{Reason: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_NotFound(t *testing.T) {
	e := newEnv(t)

	err := e.svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{Reason: "тест"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
