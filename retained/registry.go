package retained

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/agiangrant/paper/internal/logger"
	"github.com/agiangrant/paper/style"
)

// Registry maps stable element identities to their persistent styles.
//
// It is driven by one goroutine: UpdateAll and EndOfFrameCleanup run once
// per frame, and the property setters run while the frame is declared.
type Registry struct {
	pool    *style.Pool
	styles  map[uint64]*style.Style
	log     *logger.Logger
	metrics *registryMetrics

	poolConfig    style.PoolConfig
	meterProvider metric.MeterProvider

	pendingCreated int
}

// Option configures a Registry.
type Option func(*Registry)

// WithPoolConfig sets the configuration of the registry's style pool.
func WithPoolConfig(cfg style.PoolConfig) Option {
	return func(r *Registry) { r.poolConfig = cfg }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithMeterProvider sets the otel meter provider. The global provider is
// used when none is given.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Registry) { r.meterProvider = mp }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		styles:     make(map[uint64]*style.Style),
		poolConfig: style.DefaultPoolConfig(),
	}
	for _, opt := range opts {
		opt(r)
	}

	m, err := newRegistryMetrics(r.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("registry metrics: %w", err)
	}
	r.metrics = m
	r.pool = style.NewPool(r.poolConfig)
	r.log = r.log.Component("registry")
	return r, nil
}

// Pool returns the pool backing the registry.
func (r *Registry) Pool() *style.Pool { return r.pool }

// Len returns the number of registered identities.
func (r *Registry) Len() int { return len(r.styles) }

// Style returns the style registered for id.
func (r *Registry) Style(id uint64) (*style.Style, bool) {
	s, ok := r.styles[id]
	return s, ok
}

// Value returns the value in effect for p on element id. ok is false when
// id is not registered, including after its style was reclaimed.
func (r *Registry) Value(id uint64, p style.Property) (style.Value, bool) {
	s, ok := r.styles[id]
	if !ok {
		return style.Value{}, false
	}
	return s.Value(p), true
}

// styleFor returns the style for id, acquiring one for an unseen identity.
func (r *Registry) styleFor(id uint64) *style.Style {
	if s, ok := r.styles[id]; ok {
		return s
	}
	s := r.pool.Acquire()
	r.styles[id] = s
	r.pendingCreated++
	return s
}

// SetProperty records v as this frame's target for p on element id.
func (r *Registry) SetProperty(id uint64, p style.Property, v style.Value) error {
	return r.styleFor(id).SetNextValue(p, v)
}

// SetDirectProperty applies v to p on element id immediately.
func (r *Registry) SetDirectProperty(id uint64, p style.Property, v style.Value) error {
	return r.styleFor(id).SetDirectValue(p, v)
}

// SetTransition requests that this frame's change to p on element id animate.
func (r *Registry) SetTransition(id uint64, p style.Property, duration float64, easing style.EasingFunc) error {
	return r.styleFor(id).SetTransitionConfig(p, duration, easing)
}

// Target returns the style of element id as a template target,
// creating it if needed.
func (r *Registry) Target(id uint64) style.Target {
	return r.styleFor(id)
}

// UpdateAll walks tree from root in pre-order, links each element's style
// to its parent's, and updates it by dt. A parent is always updated before
// its children, so inherited values reflect this frame.
func (r *Registry) UpdateAll(dt float64, tree ElementTree, root int) {
	start := time.Now()

	stack := acquireVisitStack()
	defer releaseVisitStack(stack)

	*stack = append(*stack, visit{index: root})
	for len(*stack) > 0 {
		n := len(*stack) - 1
		v := (*stack)[n]
		*stack = (*stack)[:n]

		id := tree.ElementID(v.index)
		s := r.styleFor(id)
		// Frame trees are acyclic.
		if err := s.AttachParent(v.parent); err != nil {
			r.log.Warn("parent link skipped", "id", id, "error", err.Error())
			_ = s.AttachParent(nil)
		}
		s.Update(dt)

		children := tree.ChildIndices(v.index)
		for i := len(children) - 1; i >= 0; i-- {
			*stack = append(*stack, visit{index: children[i], parent: s})
		}
	}

	r.metrics.registered(r.pendingCreated)
	r.pendingCreated = 0
	r.metrics.updated(time.Since(start))
}

// EndOfFrameCleanup releases the style of every identity not in live and
// ends the frame for the rest. It returns the number of styles reclaimed.
// A style lives exactly as long as its element keeps being declared.
func (r *Registry) EndOfFrameCleanup(live LiveSet) int {
	reclaimed := acquireIDSlice()
	defer releaseIDSlice(reclaimed)

	for id, s := range r.styles {
		if live.Has(id) {
			s.EndOfFrame()
			continue
		}
		s.ReturnToPool()
		r.pool.Release(s)
		delete(r.styles, id)
		*reclaimed = append(*reclaimed, id)
	}

	// Styles created by setters outside UpdateAll are counted here.
	r.metrics.registered(r.pendingCreated)
	r.pendingCreated = 0

	n := len(*reclaimed)
	r.metrics.released(n)
	if n > 0 && r.log.DebugEnabled() {
		r.log.Debug("styles reclaimed", "count", n, "ids", *reclaimed, "live", len(r.styles))
	}
	return n
}
