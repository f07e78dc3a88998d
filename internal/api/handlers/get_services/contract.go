package get_services

import (
	"context"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
)

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	ListActive(ctx context.Context) ([]*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
