// Package queue provides the bounded in-memory job queue feeding the batch
// dispatcher. The abstraction keeps the dispatcher independent of a specific
// transport should a broker-backed provider be added later.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Item is one queued batch job: the job id plus the seed URL cell of every
// input row, in row order. An empty seed marks a row with no URL.
type Item struct {
	JobID  string
	Source string
	Seeds  []string
}

// Queue is a bounded in-memory queue with context-aware operations.
type Queue struct {
	ch      chan Item
	closeMu sync.Mutex
	closed  bool
}

// New constructs a queue with the provided capacity.
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{
		ch: make(chan Item, capacity),
	}
}

// Enqueue pushes a job into the queue or returns if the context ends.
func (q *Queue) Enqueue(ctx context.Context, item Item) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("enqueue canceled: %w", ctx.Err())
	case q.ch <- item:
		return nil
	}
}

// Dequeue pops the next job, respecting context cancellation.
func (q *Queue) Dequeue(ctx context.Context) (Item, error) {
	select {
	case <-ctx.Done():
		return Item{}, fmt.Errorf("dequeue canceled: %w", ctx.Err())
	case item, ok := <-q.ch:
		if !ok {
			return Item{}, errors.New("queue closed")
		}
		return item, nil
	}
}

// TryEnqueue pushes a job without blocking; it reports false when the queue
// is full.
func (q *Queue) TryEnqueue(item Item) bool {
	select {
	case q.ch <- item:
		return true
	default:
		return false
	}
}

// Close closes the underlying channel for shutdown.
func (q *Queue) Close() {
	q.closeMu.Lock()
	defer q.closeMu.Unlock()
	if q.closed {
		return
	}
	close(q.ch)
	q.closed = true
}
