package style

import (
	"fmt"
	"math"
)

// Transition is a per-frame request to animate a property's next change.
type Transition struct {
	Duration float64 // seconds
	Easing   EasingFunc
}

// interpolation is the live state of one animating property.
type interpolation struct {
	prop     Property
	start    Value
	target   Value
	duration float64
	easing   EasingFunc
	elapsed  float64
	done     bool
}

// defaults holds the schema default of every property, indexed by Property.
var defaults = func() (d [PropertyCount]Value) {
	for p := Property(0); p < PropertyCount; p++ {
		d[p] = schema[p].def
	}
	return d
}()

// Style is the persistent style state of one element: the values currently
// in effect, the values requested for this frame, transition requests and
// running interpolations.
//
// A Style is owned by the Pool that created it and is not safe for
// concurrent use; the goroutine driving the frame loop is its only writer.
type Style struct {
	pool   *Pool
	handle Handle
	parent Handle

	current    [PropertyCount]Value
	target     [PropertyCount]Value
	hasCurrent PropertySet
	hasTarget  PropertySet
	setThisFrm PropertySet

	transitions   [PropertyCount]Transition
	hasTransition PropertySet
	// transitioned holds every property ever given a transition config.
	transitioned PropertySet

	interps []interpolation

	firstFrame bool
	clean      bool
}

func newStyle(pool *Pool) *Style {
	s := &Style{pool: pool}
	s.reset()
	return s
}

func (s *Style) reset() {
	s.parent = Handle{}
	s.current = defaults
	s.target = defaults
	s.hasCurrent.Clear()
	s.hasTarget.Clear()
	s.setThisFrm.Clear()
	s.transitions = [PropertyCount]Transition{}
	s.hasTransition.Clear()
	s.transitioned.Clear()
	clear(s.interps)
	s.interps = s.interps[:0]
	s.firstFrame = true
}

// Handle returns the store's slot in its pool.
func (s *Style) Handle() Handle { return s.handle }

// ReturnToPool clears all per-element state: values return to schema
// defaults, transitions and interpolations are dropped and the parent link
// is removed. Calling it again before the store is reused does nothing.
func (s *Style) ReturnToPool() {
	if s.clean {
		return
	}
	s.reset()
	s.clean = true
}

// EndOfFrame clears the per-frame explicit-set markers. The first call
// also ends the store's first frame.
func (s *Style) EndOfFrame() {
	s.setThisFrm.Clear()
	s.firstFrame = false
}

// FirstFrame reports whether the store has not yet finished a frame.
func (s *Style) FirstFrame() bool { return s.firstFrame }

// SetParent links s to the store it inherits from. Passing nil unlinks it.
// The link is weak: once parent is released to its pool, s stops inheriting.
func (s *Style) SetParent(parent *Style) error {
	if parent == nil {
		s.parent = Handle{}
		return nil
	}
	if parent.pool != s.pool {
		return ErrForeignParent
	}
	for p := parent; p != nil; p = p.Parent() {
		if p == s {
			return fmt.Errorf("%w: %v", ErrParentCycle, s.handle)
		}
	}
	s.parent = parent.handle
	return nil
}

// AttachParent is SetParent without the cycle check, for callers that link
// stores along a tree they already know to be acyclic.
func (s *Style) AttachParent(parent *Style) error {
	if parent == nil {
		s.parent = Handle{}
		return nil
	}
	if parent.pool != s.pool {
		return ErrForeignParent
	}
	s.parent = parent.handle
	return nil
}

// Parent returns the store s inherits from, or nil.
func (s *Style) Parent() *Style {
	if !s.parent.Valid() || s.pool == nil {
		return nil
	}
	return s.pool.Get(s.parent)
}

// HasValue reports whether p has a value of its own, as opposed to an
// inherited or default one.
func (s *Style) HasValue(p Property) bool { return s.hasCurrent.Has(p) }

// Value returns the value in effect for p: the store's own value, else the
// nearest ancestor's, else the schema default.
func (s *Style) Value(p Property) Value {
	for cur := s; cur != nil; cur = cur.Parent() {
		if cur.hasCurrent.Has(p) {
			return cur.current[p]
		}
	}
	return p.Default()
}

// SetDirectValue applies v immediately, bypassing any transition.
func (s *Style) SetDirectValue(p Property, v Value) error {
	if err := p.check(v); err != nil {
		return err
	}
	s.setThisFrm.Add(p)
	s.current[p] = v
	s.target[p] = v
	s.hasCurrent.Add(p)
	s.hasTarget.Add(p)
	s.removeInterpolation(p)
	return nil
}

// SetNextValue records v as this frame's target for p. It takes effect,
// possibly animated, on the next Update.
func (s *Style) SetNextValue(p Property, v Value) error {
	if err := p.check(v); err != nil {
		return err
	}
	s.setThisFrm.Add(p)
	s.target[p] = v
	s.hasTarget.Add(p)
	return nil
}

// SetTransitionConfig requests that this frame's change to p be animated.
// The request is consumed by the next Update. easing may be nil for linear.
func (s *Style) SetTransitionConfig(p Property, duration float64, easing EasingFunc) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownProperty, uint8(p))
	}
	if duration < 0 || math.IsNaN(duration) {
		return fmt.Errorf("%w: %g for %s", ErrInvalidDuration, duration, p)
	}
	s.transitions[p] = Transition{Duration: duration, Easing: easing}
	s.hasTransition.Add(p)
	s.transitioned.Add(p)
	return nil
}

// ClearValue forgets p's own value, target, transition and interpolation.
func (s *Style) ClearValue(p Property) {
	if !p.Valid() {
		return
	}
	s.hasCurrent.Remove(p)
	s.hasTarget.Remove(p)
	s.setThisFrm.Remove(p)
	s.hasTransition.Remove(p)
	s.transitioned.Remove(p)
	s.current[p] = p.Default()
	s.target[p] = p.Default()
	s.removeInterpolation(p)
}

// Update resolves every targeted property for this frame and advances its
// interpolation by dt seconds.
func (s *Style) Update(dt float64) {
	parent := s.Parent()

	// A transition needs a start point, so animated properties without a
	// value are seeded from the parent or the default.
	if !s.firstFrame {
		for p := range s.transitioned.All() {
			if s.hasCurrent.Has(p) {
				continue
			}
			if parent != nil && parent.hasCurrent.Has(p) {
				s.current[p] = parent.current[p]
			} else {
				s.current[p] = defaults[p]
			}
			s.hasCurrent.Add(p)
		}
	}

	for p := range s.hasTarget.All() {
		target := s.resolveTarget(p, parent)

		if !s.hasTransition.Has(p) {
			s.current[p] = target
			s.removeInterpolation(p)
			continue
		}

		switch {
		case !s.hasCurrent.Has(p):
			s.current[p] = target
		case s.current[p] == target:
			s.removeInterpolation(p)
		default:
			s.advance(p, target, dt)
		}
	}

	s.purgeInterpolations()
	s.hasTransition.Clear()
	s.hasCurrent |= s.hasTarget
}

// resolveTarget picks the explicit value, else the parent's, else the default.
func (s *Style) resolveTarget(p Property, parent *Style) Value {
	if s.setThisFrm.Has(p) {
		return s.target[p]
	}
	if parent != nil && parent.hasCurrent.Has(p) {
		return parent.current[p]
	}
	return defaults[p]
}

func (s *Style) advance(p Property, target Value, dt float64) {
	cfg := s.transitions[p]
	in := s.interpolation(p)
	if in == nil {
		s.interps = append(s.interps, interpolation{prop: p})
		in = &s.interps[len(s.interps)-1]
	}
	if in.target != target {
		in.start = s.current[p]
		in.target = target
		in.duration = cfg.Duration
		in.easing = cfg.Easing
		in.elapsed = 0
	}

	in.elapsed += dt
	if in.elapsed >= in.duration {
		s.current[p] = target
		in.done = true
		return
	}

	t := in.elapsed / in.duration
	if in.easing != nil {
		t = in.easing(t)
	}
	s.current[p] = Interpolate(in.start, in.target, clamp01(t))
}

func (s *Style) interpolation(p Property) *interpolation {
	for i := range s.interps {
		if s.interps[i].prop == p {
			return &s.interps[i]
		}
	}
	return nil
}

func (s *Style) removeInterpolation(p Property) {
	if in := s.interpolation(p); in != nil {
		in.done = true
		s.purgeInterpolations()
	}
}

// purgeInterpolations compacts finished records in place.
func (s *Style) purgeInterpolations() {
	n := 0
	for _, in := range s.interps {
		if !in.done {
			s.interps[n] = in
			n++
		}
	}
	clear(s.interps[n:])
	s.interps = s.interps[:n]
}

// Interpolating reports whether p has a running interpolation.
func (s *Style) Interpolating(p Property) bool { return s.interpolation(p) != nil }

// ActiveInterpolations returns the number of running interpolations.
func (s *Style) ActiveInterpolations() int { return len(s.interps) }

// Transform composes the store's transform properties for rect. Only
// properties with a value of their own are applied.
func (s *Style) Transform(rect Rect) Transform2D {
	var b TransformBuilder
	b.Reset()
	if s.hasCurrent.Has(TranslateX) {
		b.SetTranslateX(s.current[TranslateX].Float())
	}
	if s.hasCurrent.Has(TranslateY) {
		b.SetTranslateY(s.current[TranslateY].Float())
	}
	if s.hasCurrent.Has(ScaleX) {
		b.SetScaleX(s.current[ScaleX].Float())
	}
	if s.hasCurrent.Has(ScaleY) {
		b.SetScaleY(s.current[ScaleY].Float())
	}
	if s.hasCurrent.Has(Rotate) {
		b.SetRotate(s.current[Rotate].Float())
	}
	if s.hasCurrent.Has(SkewX) {
		b.SetSkewX(s.current[SkewX].Float())
	}
	if s.hasCurrent.Has(SkewY) {
		b.SetSkewY(s.current[SkewY].Float())
	}
	if s.hasCurrent.Has(OriginX) {
		b.SetOriginX(s.current[OriginX].Float())
	}
	if s.hasCurrent.Has(OriginY) {
		b.SetOriginY(s.current[OriginY].Float())
	}
	if s.hasCurrent.Has(Transform) {
		b.SetCustom(s.current[Transform].Transform())
	}
	return b.Build(rect)
}

// Get returns the value in effect for p as a T.
func Get[T Variant](s *Style, p Property) (T, error) {
	var zero T
	if !p.Valid() {
		return zero, fmt.Errorf("%w: %d", ErrUnknownProperty, uint8(p))
	}
	if want := KindOf[T](); want != p.Kind() {
		return zero, fmt.Errorf("%w: %s holds %s, requested %s", ErrTypeMismatch, p, p.Kind(), want)
	}
	return As[T](s.Value(p))
}

// SetDirect is the typed form of Style.SetDirectValue.
func SetDirect[T Variant](s *Style, p Property, v T) error {
	return s.SetDirectValue(p, ValueOf(v))
}

// SetNext is the typed form of Style.SetNextValue.
func SetNext[T Variant](s *Style, p Property, v T) error {
	return s.SetNextValue(p, ValueOf(v))
}
