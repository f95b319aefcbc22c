package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ngandu/cimentmart/internal/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TopicPaymentStatus carries terminal payment verdicts and delivery updates
const TopicPaymentStatus = "payments.status"

// PaymentEvent is published when a payment or order reaches a new state
type PaymentEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Reference string    `json:"reference"`
	Amount    float64   `json:"amount"`
	At        time.Time `json:"at"`
}

// Publisher publishes payment events
type Publisher interface {
	PublishPaymentStatus(evt PaymentEvent)
}

// Producer writes events to kafka asynchronously through a buffered inbox.
// The inbox is never closed, publishers check the closing gate instead, so a
// publish racing shutdown is dropped rather than sent on a closed channel.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closing chan struct{}
	closeCh chan struct{}
}

// NewProducer creates new Producer instance
func NewProducer(brokers []string, topic string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox:   make(chan kafka.Message, buf),
		closing: make(chan struct{}),
		closeCh: make(chan struct{}),
	}
}

// Start runs the write loop until ctx is done, flushing the inbox on exit
func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				close(p.closing)
				for {
					select {
					case m := <-p.inbox:
						if err := p.w.WriteMessages(context.Background(), m); err != nil {
							logger.Log.Error("flush event", zap.Error(err))
						}
					default:
						_ = p.w.Close()
						close(p.closeCh)
						return
					}
				}
			case m := <-p.inbox:
				if err := p.w.WriteMessages(context.Background(), m); err != nil {
					logger.Log.Error("write event", zap.Error(err))
				}
			}
		}
	}()
}

// PublishPaymentStatus queues a payment event keyed by order id. Events
// arriving after shutdown started are dropped.
func (p *Producer) PublishPaymentStatus(evt PaymentEvent) {
	val, err := json.Marshal(evt)
	if err != nil {
		logger.Log.Error("marshal event", zap.Error(err))
		return
	}
	m := kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: val,
		Time:  time.Now(),
	}
	select {
	case <-p.closing:
		logger.Log.Warn("event dropped on shutdown", zap.String("order", evt.OrderID))
	case p.inbox <- m:
	}
}

// WaitClosed blocks until the write loop has flushed and exited
func (p *Producer) WaitClosed() { <-p.closeCh }

// Nop is a Publisher that drops events, used when no brokers are configured
type Nop struct{}

func (Nop) PublishPaymentStatus(PaymentEvent) {}
