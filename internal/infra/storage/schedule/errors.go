package schedule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило недельного расписания не найдено
	ErrRuleNotFound = errors.New("schedule.repository: weekly rule not found")

	// ErrOverrideNotFound возвращается, когда переопределение даты не найдено
	ErrOverrideNotFound = errors.New("schedule.repository: date override not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
