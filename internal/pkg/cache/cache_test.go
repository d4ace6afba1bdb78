package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedCacheGetSet(t *testing.T) {
	c := NewUnifiedCache[[]string](time.Minute, "test", nil)

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", []string{"a"})
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, v)
	assert.Equal(t, CacheMetrics{Hits: 1, Misses: 1, Sets: 1}, c.GetMetrics())

	c.Delete("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestUnifiedCacheExpires(t *testing.T) {
	c := NewUnifiedCache[int](20*time.Millisecond, "short", nil)
	c.Set("k", 1)
	time.Sleep(40 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestGetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	c := NewUnifiedCache[int](time.Minute, "load", nil)
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, c.Size())
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	c := NewUnifiedCache[int](time.Minute, "errors", nil)
	boom := errors.New("boom")

	_, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestCacheManagerClearAll(t *testing.T) {
	cm := NewCacheManager(nil)
	cm.Sports.Set("all", nil)
	cm.ClearAll()
	assert.Zero(t, cm.Sports.Size())
	assert.Contains(t, cm.GetAllMetrics(), "schedule")
}
