package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/alboomx-bot/internal/entity"
)

type fakePublisher struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (p *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return p.err
}

func TestPublishLeadEvent(t *testing.T) {
	pub := &fakePublisher{}
	at := time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)
	ev := entity.LeadEvent{ID: "ev-1", Type: entity.LeadCreated, OccurredAt: at, UserID: "555", Name: "Анна", Status: entity.StatusNew}

	require.NoError(t, NewProducer(pub).PublishLeadEvent(context.Background(), ev))

	assert.Equal(t, ExchangeName, pub.exchange)
	assert.Equal(t, RoutingKey, pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, "ev-1", pub.msg.MessageId)
	assert.Equal(t, "lead.created", pub.msg.Type)

	var got entity.LeadEvent
	require.NoError(t, json.Unmarshal(pub.msg.Body, &got))
	assert.Equal(t, "Анна", got.Name)
	assert.Equal(t, entity.StatusNew, got.Status)
}

func TestPublishLeadEventError(t *testing.T) {
	pub := &fakePublisher{err: amqp.ErrClosed}

	err := NewProducer(pub).PublishLeadEvent(context.Background(), entity.LeadEvent{ID: "ev-1"})

	assert.ErrorIs(t, err, amqp.ErrClosed)
}

type fakeTopology struct {
	exchanges []string
	queues    map[string]amqp.Table
	bindings  []string
}

func (f *fakeTopology) ExchangeDeclare(name, _ string, _, _, _, _ bool, _ amqp.Table) error {
	f.exchanges = append(f.exchanges, name)
	return nil
}

func (f *fakeTopology) QueueDeclare(name string, _, _, _, _ bool, args amqp.Table) (amqp.Queue, error) {
	if f.queues == nil {
		f.queues = map[string]amqp.Table{}
	}
	f.queues[name] = args
	return amqp.Queue{Name: name}, nil
}

func (f *fakeTopology) QueueBind(name, key, exchange string, _ bool, _ amqp.Table) error {
	f.bindings = append(f.bindings, exchange+"->"+name+"@"+key)
	return nil
}

func TestSetupTopologyDeadLetters(t *testing.T) {
	topo := &fakeTopology{}

	require.NoError(t, setupTopology(topo))

	assert.ElementsMatch(t, []string{DLXName, ExchangeName}, topo.exchanges)
	assert.Equal(t, DLXName, topo.queues[QueueName]["x-dead-letter-exchange"])
	assert.Nil(t, topo.queues[DLQName])
	assert.Contains(t, topo.bindings, ExchangeName+"->"+QueueName+"@"+RoutingKey)
	assert.Contains(t, topo.bindings, DLXName+"->"+DLQName+"@"+RoutingKey)
}

type fakeAck struct {
	acked, nacked int
	requeued      bool
}

func (a *fakeAck) Ack(uint64, bool) error { a.acked++; return nil }
func (a *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked++
	a.requeued = a.requeued || requeue
	return nil
}
func (a *fakeAck) Reject(uint64, bool) error { return nil }

type fakeConsumer struct {
	msgs chan amqp.Delivery
	err  error
}

func (c *fakeConsumer) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return c.msgs, c.err
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) SendLeadEvent(event entity.LeadEvent) error {
	return m.Called(event).Error(0)
}

func TestWorkerAcksAndNacks(t *testing.T) {
	ack := &fakeAck{}
	good, _ := json.Marshal(entity.LeadEvent{ID: "ok", Type: entity.LeadCreated})
	failing, _ := json.Marshal(entity.LeadEvent{ID: "smtp-down", Type: entity.LeadCreated})

	msgs := make(chan amqp.Delivery, 3)
	msgs <- amqp.Delivery{Acknowledger: ack, Body: good}
	msgs <- amqp.Delivery{Acknowledger: ack, Body: []byte("not json")}
	msgs <- amqp.Delivery{Acknowledger: ack, Body: failing}
	close(msgs)

	sink := new(mockSink)
	sink.On("SendLeadEvent", mock.MatchedBy(func(ev entity.LeadEvent) bool { return ev.ID == "ok" })).Return(nil)
	sink.On("SendLeadEvent", mock.MatchedBy(func(ev entity.LeadEvent) bool { return ev.ID == "smtp-down" })).Return(errors.New("smtp: 421"))

	w := NewWorker(&fakeConsumer{msgs: msgs}, sink, nil)
	require.NoError(t, w.Start(context.Background(), QueueName))

	assert.Equal(t, 1, ack.acked)
	assert.Equal(t, 2, ack.nacked)
	assert.False(t, ack.requeued)
	sink.AssertExpectations(t)
}

func TestWorkerStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWorker(&fakeConsumer{msgs: make(chan amqp.Delivery)}, new(mockSink), nil)

	assert.NoError(t, w.Start(ctx, QueueName))
}

func TestWorkerConsumeError(t *testing.T) {
	w := NewWorker(&fakeConsumer{err: amqp.ErrClosed}, new(mockSink), nil)

	assert.ErrorIs(t, w.Start(context.Background(), QueueName), amqp.ErrClosed)
}
