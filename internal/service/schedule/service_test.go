package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	scheduleRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/schedule"
	"github.com/sgurenkov/VLM-BookingService/internal/service/schedule/models"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
	"github.com/sgurenkov/VLM-BookingService/pkg/ptr"
)

type fakeScheduleRepo struct {
	rules         []*domain.WeeklyHoursRule
	overrides     []*domain.DateOverride
	savedRule     *domain.WeeklyHoursRule
	savedOverride *domain.DateOverride
	deleteErr     error
}

func (f *fakeScheduleRepo) ListRules(_ context.Context) ([]*domain.WeeklyHoursRule, error) {
	return f.rules, nil
}

func (f *fakeScheduleRepo) UpsertRule(_ context.Context, rule *domain.WeeklyHoursRule) (*domain.WeeklyHoursRule, error) {
	r := *rule
	r.ID = 1
	f.savedRule = &r
	return &r, nil
}

func (f *fakeScheduleRepo) ListOverridesFrom(_ context.Context, _ time.Time) ([]*domain.DateOverride, error) {
	return f.overrides, nil
}

func (f *fakeScheduleRepo) UpsertOverride(_ context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	o := *override
	o.ID = 2
	f.savedOverride = &o
	return &o, nil
}

func (f *fakeScheduleRepo) DeleteOverride(_ context.Context, _ time.Time) error {
	return f.deleteErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(t *testing.T, repo *fakeScheduleRepo) *Service {
	t.Helper()
	conv, err := civiltime.NewConverter("Europe/Moscow")
	require.NoError(t, err)
	return NewService(repo, conv, nopLogger{})
}

func TestUpsertWeeklyRule_Valid(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newService(t, repo)

	resp, err := svc.UpsertWeeklyRule(context.Background(), &models.UpsertWeeklyRuleRequest{
		Weekday:   0,
		OpenTime:  "08:00",
		CloseTime: "20:00",
		IsActive:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, civiltime.Clock("08:00"), repo.savedRule.OpenTime)
	assert.True(t, repo.savedRule.IsActive)
}

func TestUpsertWeeklyRule_WeekdayOutOfRange(t *testing.T) {
	svc := newService(t, &fakeScheduleRepo{})

	_, err := svc.UpsertWeeklyRule(context.Background(), &models.UpsertWeeklyRuleRequest{
		Weekday:   7,
		OpenTime:  "08:00",
		CloseTime: "20:00",
	})
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestUpsertWeeklyRule_InvertedWindow(t *testing.T) {
	svc := newService(t, &fakeScheduleRepo{})

	_, err := svc.UpsertWeeklyRule(context.Background(), &models.UpsertWeeklyRuleRequest{
		Weekday:   0,
		OpenTime:  "20:00",
		CloseTime: "08:00",
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestUpsertOverride_Closed(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newService(t, repo)

	resp, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		Date: "2025-06-12",
		Kind: "closed",
	})
	require.NoError(t, err)

	assert.Equal(t, "closed", resp.Kind)
	assert.Nil(t, resp.OpenTime)
	assert.Equal(t, domain.OverrideClosed, repo.savedOverride.Kind)
}

func TestUpsertOverride_ClosedWithWindowRejected(t *testing.T) {
	svc := newService(t, &fakeScheduleRepo{})

	_, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		Date:     "2025-06-12",
		Kind:     "closed",
		OpenTime: ptr.Ptr("10:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertOverride_CustomHours(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newService(t, repo)

	resp, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		Date:      "2025-06-12",
		Kind:      "custom_hours",
		OpenTime:  ptr.Ptr("12:00"),
		CloseTime: ptr.Ptr("16:00"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.OpenTime)
	assert.Equal(t, "12:00", *resp.OpenTime)
	assert.Equal(t, civiltime.Clock("16:00"), *repo.savedOverride.CloseTime)
}

func TestUpsertOverride_CustomHoursWithoutWindow(t *testing.T) {
	svc := newService(t, &fakeScheduleRepo{})

	_, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		Date: "2025-06-12",
		Kind: "custom_hours",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertOverride_UnknownKind(t *testing.T) {
	svc := newService(t, &fakeScheduleRepo{})

	_, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		Date: "2025-06-12",
		Kind: "holiday",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteOverride_NotFound(t *testing.T) {
	svc := newService(t, &fakeScheduleRepo{deleteErr: scheduleRepo.ErrOverrideNotFound})

	err := svc.DeleteOverride(context.Background(), "2025-06-12")
	assert.ErrorIs(t, err, ErrOverrideNotFound)
}

func TestDeleteOverride_BadDate(t *testing.T) {
	svc := newService(t, &fakeScheduleRepo{})

	err := svc.DeleteOverride(context.Background(), "12.06.2025")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
