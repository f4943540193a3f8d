// Package notifier публикует доменные события записей в RabbitMQ.
// Ошибки публикации логируются и не прерывают основной поток запроса:
// запись считается созданной независимо от судьбы уведомления.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// QueueAppointmentCreated очередь событий создания записи
	QueueAppointmentCreated = "appointment.created"

	// QueueAppointmentCancelled очередь событий отмены записи
	QueueAppointmentCancelled = "appointment.cancelled"

	// QueueSeriesCreated очередь событий создания серии записей
	QueueSeriesCreated = "series.created"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// AppointmentEvent событие по одиночной записи
type AppointmentEvent struct {
	AppointmentID int64     `json:"appointment_id"`
	CustomerID    int64     `json:"customer_id"`
	StaffID       *int64    `json:"staff_id,omitempty"`
	ServiceID     int64     `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	StartAt       string    `json:"start_at"`
	EndAt         string    `json:"end_at"`
	PersonCount   int       `json:"person_count"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// SeriesEvent событие по серии повторяющихся записей
type SeriesEvent struct {
	SeriesID     int64     `json:"series_id"`
	CustomerID   int64     `json:"customer_id"`
	ServiceID    int64     `json:"service_id"`
	CreatedCount int       `json:"created_count"`
	SkippedDates []string  `json:"skipped_dates,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Notifier публикатор событий в RabbitMQ с переиспользуемым соединением
type Notifier struct {
	url  string
	log  Logger
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// New создает новый экземпляр публикатора и устанавливает соединение.
// Недоступность брокера на старте не фатальна: соединение будет
// восстановлено при первой публикации
func New(url string, log Logger) *Notifier {
	n := &Notifier{url: url, log: log}

	if err := n.connect(); err != nil {
		log.Warn("notifier: initial connect failed, will retry on publish: %v", err)
	}

	return n
}

// PublishAppointmentCreated публикует событие создания записи
func (n *Notifier) PublishAppointmentCreated(ctx context.Context, event AppointmentEvent) {
	n.publish(ctx, QueueAppointmentCreated, event)
}

// PublishAppointmentCancelled публикует событие отмены записи
func (n *Notifier) PublishAppointmentCancelled(ctx context.Context, event AppointmentEvent) {
	n.publish(ctx, QueueAppointmentCancelled, event)
}

// PublishSeriesCreated публикует событие создания серии
func (n *Notifier) PublishSeriesCreated(ctx context.Context, event SeriesEvent) {
	n.publish(ctx, QueueSeriesCreated, event)
}

// Close закрывает канал и соединение с брокером
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ch != nil {
		_ = n.ch.Close()
		n.ch = nil
	}
	if n.conn != nil {
		_ = n.conn.Close()
		n.conn = nil
	}
}

func (n *Notifier) publish(ctx context.Context, queue string, event interface{}) {
	body, err := json.Marshal(event)
	if err != nil {
		n.log.Warn("notifier: marshal event for %s failed: %v", queue, err)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.ensureChannel(); err != nil {
		n.log.Warn("notifier: %s: broker unavailable: %v", queue, err)
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	err = n.ch.PublishWithContext(ctx, "", queue, false, false, pub)
	if err != nil {
		// Одна попытка переподключения на случай протухшего соединения
		n.reset()
		if err = n.ensureChannel(); err == nil {
			err = n.ch.PublishWithContext(ctx, "", queue, false, false, pub)
		}
	}
	if err != nil {
		n.log.Warn("notifier: publish to %s failed: %v", queue, err)
		return
	}

	n.log.Info("notifier: published event to %s", queue)
}

func (n *Notifier) connect() error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	// Очереди durable, сообщения персистентные: переживают рестарт брокера
	for _, queue := range []string{QueueAppointmentCreated, QueueAppointmentCancelled, QueueSeriesCreated} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
	}

	n.conn = conn
	n.ch = ch
	return nil
}

func (n *Notifier) ensureChannel() error {
	if n.ch != nil && n.conn != nil && !n.conn.IsClosed() {
		return nil
	}
	n.reset()
	return n.connect()
}

func (n *Notifier) reset() {
	if n.ch != nil {
		_ = n.ch.Close()
		n.ch = nil
	}
	if n.conn != nil {
		_ = n.conn.Close()
		n.conn = nil
	}
}
