package classifier

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spacesedan/reviewsense/internal/models"
)

// BuildFunc constructs a classifier backend. It may be slow.
type BuildFunc func(ctx context.Context) (Classifier, error)

// Lazy owns a classifier that is built on first use. A failed build is not
// remembered; the next call tries again. Safe for concurrent use.
type Lazy struct {
	build BuildFunc

	mu    sync.Mutex
	ready atomic.Bool
	inner Classifier
}

func NewLazy(build BuildFunc) *Lazy {
	return &Lazy{build: build}
}

// Get returns the memoized backend, building it if needed.
func (l *Lazy) Get(ctx context.Context) (Classifier, error) {
	if l.ready.Load() {
		return l.inner, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ready.Load() {
		return l.inner, nil
	}
	if l.build == nil {
		return nil, ErrNoClassifier
	}

	start := time.Now()
	c, err := l.build(ctx)
	if err != nil {
		slog.Warn("[Classifier] Failed to load classifier, will retry on next use",
			slog.String("error", err.Error()))
		return nil, err
	}
	slog.Info("[Classifier] Classifier loaded", slog.Duration("took", time.Since(start)))

	l.inner = c
	l.ready.Store(true)
	return c, nil
}

func (l *Lazy) Classify(ctx context.Context, text string) (models.SentimentLabel, float64, error) {
	c, err := l.Get(ctx)
	if err != nil {
		return "", 0, err
	}
	return c.Classify(ctx, text)
}

// Close releases the backend if it was built and holds resources.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.ready.Load() {
		return nil
	}
	l.ready.Store(false)
	closer, ok := l.inner.(io.Closer)
	l.inner = nil
	if !ok {
		return nil
	}
	return closer.Close()
}
