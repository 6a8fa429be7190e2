package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/entity"
	"github.com/pixelshop/backend/internal/usecase"
	"github.com/pixelshop/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderEvents struct {
	usecase.OrderUseCase

	pending []*entity.OutboxEvent

	processing int
	processed  int
	retried    int
}

func (f *fakeOrderEvents) GetPendingEvents(context.Context, int, int) ([]*entity.OutboxEvent, error) {
	return f.pending, nil
}

func (f *fakeOrderEvents) MarkAsProcessingBatch(_ context.Context, events []*entity.OutboxEvent) error {
	f.processing += len(events)
	return nil
}

func (f *fakeOrderEvents) MarkAsProcessedBatch(_ context.Context, events []*entity.OutboxEvent) error {
	f.processed += len(events)
	return nil
}

func (f *fakeOrderEvents) IncrementRetryCountBatch(_ context.Context, events []*entity.OutboxEvent) error {
	f.retried += len(events)
	return nil
}

type fakeSender struct {
	sent []*entity.OutboxEvent
	err  error
}

func (s *fakeSender) SendEvents(_ context.Context, events []*entity.OutboxEvent) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, events...)
	return nil
}

func (s *fakeSender) Close() error { return nil }

func newRelay(orders usecase.OrderUseCase, es *fakeSender) *OutboxRelay {
	return New(orders, es, logger.New("error"),
		time.Second, time.Minute, time.Minute, time.Second, 100, 3)
}

func pendingEvents(n int) []*entity.OutboxEvent {
	events := make([]*entity.OutboxEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, &entity.OutboxEvent{
			ID:          uuid.New(),
			AggregateID: uuid.New(),
			Payload:     []byte(`{"event":"order.completed"}`),
			Status:      entity.Pending,
		})
	}
	return events
}

func TestProcessEventsBatchPublishes(t *testing.T) {
	orders := &fakeOrderEvents{pending: pendingEvents(3)}
	sender := &fakeSender{}
	r := newRelay(orders, sender)

	r.processEventsBatch(context.Background())

	assert.Equal(t, 3, orders.processing)
	assert.Equal(t, 3, orders.processed)
	assert.Zero(t, orders.retried)
	require.Len(t, sender.sent, 3)
	assert.Equal(t, orders.pending[0].ID, sender.sent[0].ID)
}

func TestProcessEventsBatchSendFailureBumpsRetries(t *testing.T) {
	orders := &fakeOrderEvents{pending: pendingEvents(2)}
	sender := &fakeSender{err: errors.New("broker unreachable")}
	r := newRelay(orders, sender)

	r.processEventsBatch(context.Background())

	assert.Equal(t, 2, orders.processing)
	assert.Zero(t, orders.processed)
	assert.Equal(t, 2, orders.retried)
}

func TestProcessEventsBatchNoPendingIsNoop(t *testing.T) {
	orders := &fakeOrderEvents{}
	sender := &fakeSender{}
	r := newRelay(orders, sender)

	r.processEventsBatch(context.Background())

	assert.Zero(t, orders.processing)
	assert.Empty(t, sender.sent)
}

func TestStartTwiceFails(t *testing.T) {
	orders := &fakeOrderEvents{}
	sender := &fakeSender{}
	r := newRelay(orders, sender)

	require.NoError(t, r.Start(context.Background()))
	assert.Error(t, r.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Shutdown(ctx))
}
