package utils

import (
	"log/slog"
	"sync"
	"time"
)

const (
	BATCH_SIZE          = 25
	BATCH_TIMEOUT       = time.Second * 5
	DYNAMODB_BATCH_SIZE = 25
)

type BatchBuffer[T any] struct {
	buffer     []T
	capacity   int
	bufferLock sync.Mutex
}

func NewBatchBuffer[T any]() *BatchBuffer[T] {
	return NewBatchBufferSize[T](BATCH_SIZE)
}

// NewBatchBufferSize preallocates room for size items per batch.
func NewBatchBufferSize[T any](size int) *BatchBuffer[T] {
	if size <= 0 {
		size = BATCH_SIZE
	}
	return &BatchBuffer[T]{
		buffer:   make([]T, 0, size),
		capacity: size,
	}
}

// Add appends item and returns the new size.
func (b *BatchBuffer[T]) Add(item T) int {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	b.buffer = append(b.buffer, item)
	return len(b.buffer)
}

func (b *BatchBuffer[T]) GetAndClear() []T {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	if len(b.buffer) == 0 {
		return nil
	}

	batch := b.buffer
	b.buffer = make([]T, 0, b.capacity)
	return batch
}

func (b *BatchBuffer[T]) Size() int {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()
	return len(b.buffer)
}

func (b *BatchBuffer[T]) HasData() bool {
	return b.Size() > 0
}

func (b *BatchBuffer[T]) Peek() []T {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	return append([]T(nil), b.buffer...)
}

func (b *BatchBuffer[T]) LogBatchProcessing(batchType string) {
	slog.Info("[BatchBuffer] Processing batch",
		slog.String("type", batchType),
		slog.Int("batch_size", b.Size()))
}
