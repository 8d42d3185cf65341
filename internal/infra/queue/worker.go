package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/alboomx-bot/internal/entity"
)

// LeadEventSink receives consumed events, e.g. the mail sender.
type LeadEventSink interface {
	SendLeadEvent(event entity.LeadEvent) error
}

// Consumer is the part of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Sink    LeadEventSink
	Logger  *zap.Logger
}

func NewWorker(ch Consumer, sink LeadEventSink, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{Channel: ch, Sink: sink, Logger: logger}
}

// Start consumes until ctx is done or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	w.Logger.Info("📥 worker waiting for lead events", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(d)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery) {
	var event entity.LeadEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		w.Logger.Error("malformed lead event", zap.Error(err))
		d.Nack(false, false)
		return
	}

	log := w.Logger.With(zap.String("event_id", event.ID), zap.String("type", string(event.Type)))

	if err := w.Sink.SendLeadEvent(event); err != nil {
		// No requeue: the DLQ keeps it for inspection.
		log.Error("lead event delivery failed", zap.Error(err))
		d.Nack(false, false)
		return
	}

	log.Info("✅ lead event delivered")
	d.Ack(false)
}
