package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redstonehub/laurel/internal/domain/model"
)

func job(month string) Job {
	return Job{Kind: model.KindHof, Filters: model.Filters{Month: month}, Reason: "test"}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, job("May")) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.Filters.Month != "May" {
		t.Errorf("expected May, got %v", got.Filters.Month)
	}
	if got.EnqueuedAt.IsZero() {
		t.Error("expected enqueue time to be stamped")
	}
	_ = q.Close()
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, job("May")) || !q.Enqueue(ctx, job("June")) {
		t.Fatal("expected enqueue to succeed")
	}
	if q.Enqueue(ctx, job("July")) {
		t.Error("expected enqueue to fail when full")
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(16))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	const producers, perProducer = 5, 40

	consumed := make(chan Job, producers*perProducer)
	for i := 0; i < 3; i++ {
		go func() {
			for j := range q.Dequeue(ctx) {
				consumed <- j
			}
		}()
	}

	done := make(chan struct{}, producers)
	for i := 0; i < producers; i++ {
		go func(id int) {
			for j := 0; j < perProducer; j++ {
				for !q.Enqueue(ctx, job(fmt.Sprintf("%d-%d", id, j))) {
					time.Sleep(time.Millisecond)
				}
			}
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < producers; i++ {
		<-done
	}

	deadline := time.After(2 * time.Second)
	for n := 0; n < producers*perProducer; n++ {
		select {
		case <-consumed:
		case <-deadline:
			t.Fatalf("consumed %d of %d jobs", n, producers*perProducer)
		}
	}
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected final length 0, got %d", l)
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	if !q.Enqueue(ctx, job("May")) {
		t.Error("expected enqueue to succeed")
	}
	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}
	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}
	if q.Enqueue(ctx, job("June")) {
		t.Error("expected enqueue to fail after closing")
	}

	// Buffered jobs are still delivered, then the channel closes.
	jobs := q.Dequeue(ctx)
	timeout := time.After(time.Second)
	delivered := 0
	for {
		select {
		case _, ok := <-jobs:
			if !ok {
				if delivered != 1 {
					t.Errorf("expected 1 buffered job, got %d", delivered)
				}
				if err := q.Close(); err != nil {
					t.Errorf("expected second close to succeed, got error: %v", err)
				}
				return
			}
			delivered++
		case <-timeout:
			t.Fatal("expected dequeue channel to be closed within timeout")
		}
	}
}
