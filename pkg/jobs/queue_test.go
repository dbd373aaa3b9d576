package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueBeforeStartFails(t *testing.T) {
	q := NewQueue[string]("audit", func(context.Context, Job[string]) error { return nil }, QueueConfig{})
	_, err := q.Enqueue("x")
	assert.Error(t, err)
}

func TestQueueProcessesPayload(t *testing.T) {
	got := make(chan string, 1)
	q := NewQueue[string]("audit", func(_ context.Context, j Job[string]) error {
		got <- j.Payload
		return nil
	}, QueueConfig{})
	q.Start(context.Background())
	defer q.Stop()

	id, err := q.Enqueue("room.create")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case v := <-got:
		assert.Equal(t, "room.create", v)
	case <-time.After(time.Second):
		t.Fatal("job not processed")
	}
}

func TestQueueRetriesUntilSuccess(t *testing.T) {
	var calls int32
	done := make(chan struct{})
	q := NewQueue[int]("audit", func(_ context.Context, j Job[int]) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("db down")
		}
		close(done)
		return nil
	}, QueueConfig{MaxRetries: 5, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(1)
	require.NoError(t, err)

	select {
	case <-done:
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	case <-time.After(time.Second):
		t.Fatal("job never succeeded")
	}
}
