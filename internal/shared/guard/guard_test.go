package guard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_RejectsReentry(t *testing.T) {
	g := New()

	err := g.Do(context.Background(), "0xaaa", func(ctx context.Context) error {
		return g.Do(ctx, "0xaaa", func(context.Context) error {
			t.Fatal("re-entrant section must not run")
			return nil
		})
	})

	assert.ErrorIs(t, err, ErrReentrantCall)
}

func TestGuard_NestedDifferentKeysSameShard(t *testing.T) {
	g := NewWithShards(1)
	ran := false

	err := g.Do(context.Background(), "0xaaa", func(ctx context.Context) error {
		return g.Do(ctx, "0xbbb", func(context.Context) error {
			ran = true
			return nil
		})
	})

	require.NoError(t, err)
	assert.True(t, ran)
}

func TestGuard_SerializesSameKey(t *testing.T) {
	g := New()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Do(context.Background(), "0xaaa", func(context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestGuard_WaitHonoursContext(t *testing.T) {
	g := New()
	release := make(chan struct{})
	acquired := make(chan struct{})

	go func() {
		_ = g.Do(context.Background(), "0xaaa", func(context.Context) error {
			close(acquired)
			<-release
			return nil
		})
	}()
	<-acquired

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := g.Do(ctx, "0xaaa", func(context.Context) error { return nil })
	close(release)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
