package mirror

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type collector struct {
	mu     sync.Mutex
	pushes [][]string
	signal chan struct{}
}

func newCollector() *collector {
	return &collector{signal: make(chan struct{}, 16)}
}

func (c *collector) push(docs []string) {
	c.mu.Lock()
	c.pushes = append(c.pushes, docs)
	c.mu.Unlock()
	c.signal <- struct{}{}
}

func (c *collector) wait(t *testing.T) [][]string {
	t.Helper()
	select {
	case <-c.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mirror push")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string{}, c.pushes...)
}

func staticFetch(docs []string) FetchFunc[string] {
	return func(context.Context) ([]string, error) { return docs, nil }
}

func chanWatch(events chan struct{}) WatchFunc {
	return func(ctx context.Context) (<-chan struct{}, error) {
		out := make(chan struct{})
		go func() {
			defer close(out)
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-events:
					if !ok {
						return
					}
					out <- struct{}{}
				}
			}
		}()
		return out, nil
	}
}

func TestSubscribe_DeliversInitialSet(t *testing.T) {
	c := newCollector()
	events := make(chan struct{})
	sub := Subscribe(context.Background(), staticFetch([]string{"a", "b"}), chanWatch(events), c.push, zap.NewNop())
	defer sub.Cancel()

	pushes := c.wait(t)
	require.Len(t, pushes, 1)
	assert.Equal(t, []string{"a", "b"}, pushes[0])
}

func TestSubscribe_RefetchesOnEveryEvent(t *testing.T) {
	c := newCollector()
	events := make(chan struct{})

	var mu sync.Mutex
	docs := []string{"a"}
	fetch := func(context.Context) ([]string, error) {
		mu.Lock()
		defer mu.Unlock()
		return append([]string{}, docs...), nil
	}

	sub := Subscribe(context.Background(), fetch, chanWatch(events), c.push, zap.NewNop())
	defer sub.Cancel()
	c.wait(t)

	mu.Lock()
	docs = []string{"a", "b"}
	mu.Unlock()
	events <- struct{}{}

	pushes := c.wait(t)
	require.Len(t, pushes, 2)
	assert.Equal(t, []string{"a", "b"}, pushes[1])
}

func TestSubscribe_EmptyCollectionPushesEmptySlice(t *testing.T) {
	c := newCollector()
	events := make(chan struct{})
	fetch := func(context.Context) ([]string, error) { return nil, nil }

	sub := Subscribe(context.Background(), fetch, chanWatch(events), c.push, zap.NewNop())
	defer sub.Cancel()

	pushes := c.wait(t)
	require.Len(t, pushes, 1)
	assert.NotNil(t, pushes[0])
	assert.Empty(t, pushes[0])
}

func TestSubscribe_FetchErrorDegradesToEmpty(t *testing.T) {
	c := newCollector()
	events := make(chan struct{})
	fetch := func(context.Context) ([]string, error) { return nil, assert.AnError }

	sub := Subscribe(context.Background(), fetch, chanWatch(events), c.push, zap.NewNop())
	defer sub.Cancel()

	pushes := c.wait(t)
	require.Len(t, pushes, 1)
	assert.Empty(t, pushes[0])
}

func TestSubscribe_WatchErrorDegradesToEmpty(t *testing.T) {
	c := newCollector()
	watch := func(context.Context) (<-chan struct{}, error) { return nil, assert.AnError }

	sub := Subscribe(context.Background(), staticFetch([]string{"a"}), watch, c.push, zap.NewNop())

	pushes := c.wait(t)
	require.Len(t, pushes, 1)
	assert.Empty(t, pushes[0])

	// Still cancellable after the failed watch.
	sub.Cancel()
}

func TestSubscribe_CancelStopsDelivery(t *testing.T) {
	c := newCollector()
	events := make(chan struct{}, 1)

	sub := Subscribe(context.Background(), staticFetch([]string{"a"}), chanWatch(events), c.push, zap.NewNop())
	c.wait(t)

	sub.Cancel()
	events <- struct{}{}

	select {
	case <-c.signal:
		t.Fatal("push delivered after cancel")
	case <-time.After(100 * time.Millisecond):
	}

	// A second cancel is harmless.
	sub.Cancel()
}
