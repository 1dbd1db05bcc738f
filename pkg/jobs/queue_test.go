package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesTasks(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	done := make(chan struct{}, 1)

	q := NewQueue("test", func(_ context.Context, task Task) error {
		mu.Lock()
		seen = append(seen, task.ID)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 1})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Submit(Task{ID: "t1", Kind: "noop"}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task was not processed")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"t1"}, seen)
}

func TestQueueRetriesFailedTasks(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{})

	q := NewQueue("test", func(_ context.Context, task Task) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}, QueueConfig{Workers: 1, MaxAttempts: 3, Backoff: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Submit(Task{ID: "t1", Kind: "flaky"}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task was not retried")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, attempts)
}

func TestQueueRejectsSubmitBeforeStart(t *testing.T) {
	q := NewQueue("test", func(context.Context, Task) error { return nil }, QueueConfig{})
	err := q.Submit(Task{ID: "t1"})
	assert.Error(t, err)
}
