package style

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolReuse(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	a := pool.Acquire()
	h := a.Handle()
	require.True(t, h.Valid())
	assert.Same(t, a, pool.Get(h))

	pool.Release(a)
	assert.Nil(t, pool.Get(h), "stale handle must not resolve")
	assert.False(t, a.Handle().Valid())

	b := pool.Acquire()
	assert.Same(t, a, b, "released style is recycled")
	assert.NotEqual(t, h, b.Handle(), "recycled slot gets a new generation")

	stats := pool.Stats()
	assert.Equal(t, 1, stats.Live)
	assert.Equal(t, 0, stats.Free)
	assert.Equal(t, uint64(1), stats.Created)
	assert.Equal(t, uint64(1), stats.Reused)
}

func TestPoolRoundTripLooksNew(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	parent := pool.Acquire()
	s := pool.Acquire()

	require.NoError(t, s.SetParent(parent))
	require.NoError(t, SetDirect(s, BackgroundColor, White))
	s.Update(0)
	s.EndOfFrame()
	require.NoError(t, s.SetTransitionConfig(Rotate, 1, nil))
	require.NoError(t, SetNext(s, Rotate, 90.0))
	s.Update(0.1)
	require.NoError(t, SetDirect(parent, FontSize, 40.0))

	pool.Release(s)
	got := pool.Acquire()
	require.Same(t, s, got)

	assert.Nil(t, got.Parent())
	assert.True(t, got.FirstFrame())
	assert.Zero(t, got.ActiveInterpolations())
	for _, p := range Properties() {
		assert.False(t, got.HasValue(p), "%s", p)
		assert.Equal(t, p.Default(), got.Value(p), "%s", p)
	}

	// First frame again: a transition does not animate.
	require.NoError(t, got.SetTransitionConfig(Rotate, 1, nil))
	require.NoError(t, SetNext(got, Rotate, 45.0))
	got.Update(0.1)
	assert.Equal(t, 45.0, got.Value(Rotate).Float())
}

func TestPoolDoubleRelease(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	s := pool.Acquire()
	pool.Release(s)
	pool.Release(s)
	pool.Release(nil)

	stats := pool.Stats()
	assert.Equal(t, 0, stats.Live)
	assert.Equal(t, 1, stats.Free)

	a, b := pool.Acquire(), pool.Acquire()
	assert.NotSame(t, a, b)
}

func TestPoolForeignRelease(t *testing.T) {
	p1, p2 := NewPool(DefaultPoolConfig()), NewPool(DefaultPoolConfig())
	s := p1.Acquire()
	p2.Release(s)
	assert.Same(t, s, p1.Get(s.Handle()))
}

func TestPoolMaxRetained(t *testing.T) {
	pool := NewPool(PoolConfig{MaxRetained: 2})
	styles := make([]*Style, 4)
	for i := range styles {
		styles[i] = pool.Acquire()
	}
	for _, s := range styles {
		pool.Release(s)
	}

	stats := pool.Stats()
	assert.Equal(t, 2, stats.Free)
	assert.Equal(t, uint64(2), stats.Discarded)

	for range styles {
		s := pool.Acquire()
		assert.True(t, s.FirstFrame())
	}
	stats = pool.Stats()
	assert.Equal(t, 4, stats.Live)
	assert.Equal(t, uint64(6), stats.Created)
	assert.Equal(t, uint64(2), stats.Reused)
}

func TestPoolConcurrentAcquireRelease(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s := pool.Acquire()
				_ = SetDirect(s, Rotate, 1.0)
				pool.Release(s)
			}
		}()
	}
	wg.Wait()

	stats := pool.Stats()
	assert.Equal(t, 0, stats.Live)
	assert.Equal(t, uint64(800), stats.Created+stats.Reused)
}

func BenchmarkPoolAcquireRelease(b *testing.B) {
	pool := NewPool(DefaultPoolConfig())
	b.ReportAllocs()
	for b.Loop() {
		s := pool.Acquire()
		pool.Release(s)
	}
}
