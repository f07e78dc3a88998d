package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Темы событий бронирований. Диспетчер исходящих уведомлений
// (отдельный сервис) подписывается на них и рассылает SMS/вебхуки.
const (
	SubjectBookingCreated     = "bookings.created"
	SubjectBookingCancelled   = "bookings.cancelled"
	SubjectBookingRescheduled = "bookings.rescheduled"
)

// Publisher публикует доменные события
type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
	Close()
}

// NATSPublisher публикует события в NATS
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher подключается к NATS по указанному URL
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("events: connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Publish сериализует payload в JSON и публикует в subject
func (p *NATSPublisher) Publish(_ context.Context, subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("events: marshal payload: %w", err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("events: publish %s: %w", subject, err)
	}
	return nil
}

// Close закрывает соединение с NATS
func (p *NATSPublisher) Close() {
	p.conn.Close()
}

// NoopPublisher заглушка, когда шина событий выключена в конфигурации
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close()                                             {}
