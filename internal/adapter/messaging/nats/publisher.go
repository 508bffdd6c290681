package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("rental-service/nats-publisher")

// Event is the envelope every rental event is published in. Consumers key
// deduplication on ID, which is also sent as the Nats-Msg-Id header.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Source     string      `json:"source"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// Publisher emits rental events with the caller's trace context in the headers.
type Publisher struct {
	conn   *nats.Conn
	source string
	now    func() time.Time
	logger *logger.Logger
}

// NewPublisher connects to NATS. Reconnects are retried forever once connected.
func NewPublisher(url string, log *logger.Logger, source string) (*Publisher, error) {
	log = log.Named("NATSPublisher")
	conn, err := nats.Connect(url,
		nats.Name(source+" events"),
		nats.Timeout(10*time.Second),
		nats.MaxReconnects(-1),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			fields := []zap.Field{zap.Error(err)}
			if sub != nil {
				fields = append(fields, zap.String("subject", sub.Subject))
			}
			log.Error("NATS async error", fields...)
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected, events will be buffered", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	log.Info("Connected to NATS", zap.String("url", conn.ConnectedUrl()))

	return &Publisher{conn: conn, source: source, now: time.Now, logger: log}, nil
}

// Publish wraps data in an Event and sends it on subject.
func (p *Publisher) Publish(ctx context.Context, subject string, data interface{}) error {
	event := Event{
		ID:         uuid.NewString(),
		Type:       subject,
		Source:     p.source,
		OccurredAt: p.now().UTC(),
		Data:       data,
	}
	msg, err := newMessage(event)
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "publish "+subject,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "nats"),
			attribute.String("messaging.destination.name", subject),
			attribute.String("messaging.message.id", event.ID),
		),
	)
	defer span.End()
	otel.GetTextMapPropagator().Inject(ctx, NATSHeaderCarrier(msg.Header))

	if err := p.conn.PublishMsg(msg); err != nil {
		span.RecordError(err)
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.logger.Debug("Event published", zap.String("subject", subject), zap.String("event_id", event.ID))
	return nil
}

func newMessage(event Event) (*nats.Msg, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	msg := nats.NewMsg(event.Type)
	msg.Data = body
	msg.Header.Set(nats.MsgIdHdr, event.ID)
	msg.Header.Set("Content-Type", "application/json")
	return msg, nil
}

// NATSHeaderCarrier adapts nats.Header to propagation.TextMapCarrier.
type NATSHeaderCarrier nats.Header

func (c NATSHeaderCarrier) Get(key string) string { return nats.Header(c).Get(key) }

func (c NATSHeaderCarrier) Set(key, value string) { nats.Header(c).Set(key, value) }

func (c NATSHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// Close flushes buffered events and closes the connection.
func (p *Publisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.Error("Failed to drain NATS connection", zap.Error(err))
	}
}
