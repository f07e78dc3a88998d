package get_services

import "github.com/sgurenkov/VLM-BookingService/internal/domain"

// ServiceResponse HTTP модель услуги для витрины
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
}

// FromDomainServices конвертирует domain модели в HTTP response
func FromDomainServices(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]*ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, &ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	return resp
}
