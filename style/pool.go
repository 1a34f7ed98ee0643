package style

import (
	"fmt"
	"sync"
)

// ============================================================================
// Style Pooling
// ============================================================================
//
// Styles live in an arena of slots. A Handle names a slot together with the
// generation it was issued for, so a handle kept past Release no longer
// resolves. Parent links are handles for this reason: a child never keeps
// its parent's state alive.
//
// Usage:
//   s := pool.Acquire()
//   ... per-frame Update/EndOfFrame ...
//   pool.Release(s)

// Handle is a generation-checked reference to a pooled Style.
// The zero Handle refers to nothing.
type Handle struct {
	slot int32
	gen  uint32
}

// Valid reports whether h was issued by a pool.
func (h Handle) Valid() bool { return h.gen != 0 }

func (h Handle) String() string { return fmt.Sprintf("style#%d.%d", h.slot, h.gen) }

// PoolConfig bounds how many released styles a pool keeps for reuse.
type PoolConfig struct {
	// MaxRetained is the number of free styles kept for reuse.
	// Zero means no limit.
	MaxRetained int
}

// DefaultPoolConfig returns an unbounded pool configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{}
}

// PoolStats is a snapshot of pool counters.
type PoolStats struct {
	Live      int    // styles acquired and not yet released
	Free      int    // styles waiting for reuse
	Created   uint64 // styles allocated
	Reused    uint64 // acquisitions served from the free list
	Discarded uint64 // releases dropped because the free list was full
}

type slot struct {
	style *Style
	gen   uint32
	live  bool
}

// Pool hands out reset Styles and takes them back. Acquire and Release are
// safe for concurrent use; the Styles themselves are not.
type Pool struct {
	cfg PoolConfig

	mu    sync.Mutex
	slots []slot
	free  []int32
	stats PoolStats
}

// NewPool creates an empty pool.
func NewPool(cfg PoolConfig) *Pool {
	return &Pool{cfg: cfg}
}

// Acquire returns a Style in its initial state, recycling a released one
// when available. It never fails.
func (p *Pool) Acquire() *Style {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		sl := &p.slots[idx]
		if sl.style == nil {
			// Slot was kept but its Style dropped past the retention cap.
			sl.style = newStyle(p)
			p.stats.Created++
		} else {
			p.stats.Reused++
			p.stats.Free--
		}
		sl.live = true
		sl.style.handle = Handle{slot: idx, gen: sl.gen}
		sl.style.clean = false
		p.stats.Live++
		return sl.style
	}

	idx := int32(len(p.slots))
	s := newStyle(p)
	s.handle = Handle{slot: idx, gen: 1}
	p.slots = append(p.slots, slot{style: s, gen: 1, live: true})
	p.stats.Created++
	p.stats.Live++
	return s
}

// Release resets s and returns it to the pool. Handles to s stop resolving.
// Releasing a Style twice, or one from another pool, does nothing.
func (p *Pool) Release(s *Style) {
	if s == nil || s.pool != p {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := s.handle.slot
	if idx < 0 || int(idx) >= len(p.slots) {
		return
	}
	sl := &p.slots[idx]
	if !sl.live || sl.style != s || sl.gen != s.handle.gen {
		return
	}

	s.ReturnToPool()
	sl.live = false
	sl.gen++
	if sl.gen == 0 {
		sl.gen = 1
	}
	s.handle = Handle{}
	p.stats.Live--

	if p.cfg.MaxRetained > 0 && p.stats.Free >= p.cfg.MaxRetained {
		sl.style = nil
		p.stats.Discarded++
	} else {
		p.stats.Free++
	}
	p.free = append(p.free, idx)
}

// Get resolves h, returning nil if the style it named was released.
func (p *Pool) Get(h Handle) *Style {
	if !h.Valid() {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if h.slot < 0 || int(h.slot) >= len(p.slots) {
		return nil
	}
	sl := &p.slots[h.slot]
	if !sl.live || sl.gen != h.gen {
		return nil
	}
	return sl.style
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
