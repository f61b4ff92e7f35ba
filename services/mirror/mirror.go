package mirror

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// FetchFunc returns the full current document set for the watched
// collection.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// WatchFunc opens the remote change feed. The returned channel ticks once
// per remote change and closes on stream failure or cancellation.
type WatchFunc func(ctx context.Context) (<-chan struct{}, error)

// Subscription is a live mirror handle. Cancel stops delivery and waits
// for the mirror goroutine to exit; calling it again is harmless.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Cancel tears the subscription down.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
	<-s.done
}

// Subscribe mirrors a remote collection into the push callback: the full
// matching set is delivered immediately and again after every remote
// change. An empty collection pushes an empty slice, not an error. Fetch
// or stream failures are logged and degrade to an empty view; the
// consumer keeps its callback simple and never sees a panic.
func Subscribe[T any](ctx context.Context, fetch FetchFunc[T], watch WatchFunc, push func([]T), logger *zap.Logger) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)

		deliver := func() {
			docs, err := fetch(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Error("mirror fetch failed", zap.Error(err))
				}
				push([]T{})
				return
			}
			if docs == nil {
				docs = []T{}
			}
			push(docs)
		}

		events, err := watch(ctx)
		if err != nil {
			logger.Error("mirror watch failed", zap.Error(err))
			push([]T{})
			<-ctx.Done()
			return
		}

		deliver()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					if ctx.Err() == nil {
						logger.Warn("mirror stream closed, degrading to empty view")
						push([]T{})
					}
					return
				}
				deliver()
			}
		}
	}()
	return sub
}
