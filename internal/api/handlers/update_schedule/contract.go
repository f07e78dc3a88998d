package update_schedule

import (
	"context"

	"github.com/sgurenkov/VLM-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertWeeklyRule(ctx context.Context, req *models.UpsertWeeklyRuleRequest) (*models.WeeklyRuleResponse, error)
	UpsertOverride(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error)
	DeleteOverride(ctx context.Context, rawDate string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
