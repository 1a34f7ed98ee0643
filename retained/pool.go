package retained

import (
	"sync"

	"github.com/agiangrant/paper/style"
)

// ============================================================================
// Traversal Stack Pooling
// ============================================================================
//
// UpdateAll walks the element tree with an explicit stack instead of
// recursion. The stacks are pooled so a steady-state frame allocates nothing.
//
// Usage:
//   stack := acquireVisitStack()
//   ... push/pop ...
//   releaseVisitStack(stack)

// visit is one pending element in a pre-order walk.
type visit struct {
	index  int
	parent *style.Style
}

var visitStackPool = sync.Pool{
	New: func() any {
		s := make([]visit, 0, 64)
		return &s
	},
}

func acquireVisitStack() *[]visit {
	return visitStackPool.Get().(*[]visit)
}

// releaseVisitStack clears the stack so pooled entries do not pin styles.
func releaseVisitStack(s *[]visit) {
	if s == nil {
		return
	}
	clear((*s)[:cap(*s)])
	// Only pool stacks up to a reasonable size to avoid memory bloat.
	if cap(*s) > 4096 {
		return
	}
	*s = (*s)[:0]
	visitStackPool.Put(s)
}

// ============================================================================
// Identity Slice Pooling
// ============================================================================

// idSlicePool pools []uint64 used to collect reclaimed identities during
// end-of-frame cleanup.
var idSlicePool = sync.Pool{
	New: func() any {
		s := make([]uint64, 0, 32)
		return &s
	},
}

func acquireIDSlice() *[]uint64 {
	return idSlicePool.Get().(*[]uint64)
}

func releaseIDSlice(s *[]uint64) {
	if s == nil || cap(*s) > 4096 {
		return
	}
	*s = (*s)[:0]
	idSlicePool.Put(s)
}
