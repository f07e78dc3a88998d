package models

import (
	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// Request модели

// UpsertWeeklyRuleRequest запрос на создание или обновление недельного правила
type UpsertWeeklyRuleRequest struct {
	Weekday   int    `json:"weekday"`  // Понедельник = 0
	OpenTime  string `json:"openTime"` // "09:00"
	CloseTime string `json:"closeTime"`
	IsActive  bool   `json:"isActive"`
}

// UpsertOverrideRequest запрос на переопределение даты
type UpsertOverrideRequest struct {
	Date      string  `json:"date"` // "2025-10-15"
	Kind      string  `json:"kind"` // closed или custom_hours
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// Response модели

// WeeklyRuleResponse недельное правило
type WeeklyRuleResponse struct {
	ID        int64  `json:"id"`
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsActive  bool   `json:"isActive"`
}

// OverrideResponse переопределение даты
type OverrideResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	Kind      string  `json:"kind"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// ScheduleResponse расписание целиком: недельные правила и переопределения
type ScheduleResponse struct {
	Rules     []*WeeklyRuleResponse `json:"rules"`
	Overrides []*OverrideResponse   `json:"overrides"`
}

// FromDomainRule конвертирует domain модель в response
func FromDomainRule(r *domain.WeeklyHoursRule) *WeeklyRuleResponse {
	return &WeeklyRuleResponse{
		ID:        r.ID,
		Weekday:   r.Weekday,
		OpenTime:  string(r.OpenTime),
		CloseTime: string(r.CloseTime),
		IsActive:  r.IsActive,
	}
}

// FromDomainOverride конвертирует domain модель в response
func FromDomainOverride(o *domain.DateOverride, conv *civiltime.Converter) *OverrideResponse {
	resp := &OverrideResponse{
		ID:   o.ID,
		Date: conv.FormatDate(o.Date),
		Kind: string(o.Kind),
	}

	if o.OpenTime != nil {
		s := string(*o.OpenTime)
		resp.OpenTime = &s
	}
	if o.CloseTime != nil {
		s := string(*o.CloseTime)
		resp.CloseTime = &s
	}

	return resp
}

// FromDomainSchedule собирает полный ответ расписания
func FromDomainSchedule(rules []*domain.WeeklyHoursRule, overrides []*domain.DateOverride, conv *civiltime.Converter) *ScheduleResponse {
	resp := &ScheduleResponse{
		Rules:     make([]*WeeklyRuleResponse, 0, len(rules)),
		Overrides: make([]*OverrideResponse, 0, len(overrides)),
	}

	for _, r := range rules {
		resp.Rules = append(resp.Rules, FromDomainRule(r))
	}
	for _, o := range overrides {
		resp.Overrides = append(resp.Overrides, FromDomainOverride(o, conv))
	}

	return resp
}
