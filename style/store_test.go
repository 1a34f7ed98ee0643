package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frame runs one frame for s: declare, Update, EndOfFrame.
func frame(t *testing.T, s *Style, dt float64, declare func(s *Style)) {
	t.Helper()
	if declare != nil {
		declare(s)
	}
	s.Update(dt)
	s.EndOfFrame()
}

func float(t *testing.T, s *Style, p Property) float64 {
	t.Helper()
	v, err := Get[float64](s, p)
	require.NoError(t, err)
	return v
}

func TestStyleDefaults(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	for _, p := range Properties() {
		assert.Equal(t, p.Default(), s.Value(p), "%s", p)
		assert.False(t, s.HasValue(p), "%s", p)
	}
	assert.True(t, s.FirstFrame())
}

func TestStyleExplicitOverridesParent(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	parent, child := pool.Acquire(), pool.Acquire()
	require.NoError(t, child.SetParent(parent))

	red := RGB(255, 0, 0)
	require.NoError(t, SetDirect(parent, TextColor, RGB(0, 0, 255)))
	require.NoError(t, SetDirect(child, TextColor, red))

	got, err := Get[Color](child, TextColor)
	require.NoError(t, err)
	assert.Equal(t, red, got)
}

func TestStyleInheritance(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	grand, parent, child := pool.Acquire(), pool.Acquire(), pool.Acquire()
	require.NoError(t, parent.SetParent(grand))
	require.NoError(t, child.SetParent(parent))

	assert.Equal(t, FontSize.Default(), child.Value(FontSize))

	require.NoError(t, SetDirect(grand, FontSize, 24.0))
	assert.Equal(t, 24.0, float(t, child, FontSize))
	assert.False(t, child.HasValue(FontSize))

	require.NoError(t, SetDirect(parent, FontSize, 18.0))
	assert.Equal(t, 18.0, float(t, child, FontSize))
	assert.Equal(t, parent.Value(FontSize), child.Value(FontSize))
}

func TestStyleInheritsOnceExplicitStops(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	parent, child := pool.Acquire(), pool.Acquire()
	require.NoError(t, child.SetParent(parent))
	require.NoError(t, SetDirect(parent, LineHeight, 2.0))

	frame(t, child, 0.016, func(s *Style) { require.NoError(t, SetNext(s, LineHeight, 1.5)) })
	assert.Equal(t, 1.5, float(t, child, LineHeight))

	// Not declared this frame: the target falls back to the parent.
	frame(t, child, 0.016, nil)
	assert.Equal(t, 2.0, float(t, child, LineHeight))

	// Without a parent value the target falls back to the default.
	require.NoError(t, child.SetParent(nil))
	frame(t, child, 0.016, nil)
	assert.Equal(t, 1.0, float(t, child, LineHeight))
}

func TestStyleInstantaneousSet(t *testing.T) {
	for _, dt := range []float64{0, 0.016, 1, 100} {
		s := NewPool(DefaultPoolConfig()).Acquire()
		require.NoError(t, SetNext(s, Rotate, 45.0))
		assert.Equal(t, 0.0, float(t, s, Rotate), "not applied before Update")
		s.Update(dt)
		assert.Equal(t, 45.0, float(t, s, Rotate))
		assert.True(t, s.HasValue(Rotate))
	}
}

func TestStyleTransitionConvergence(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	declare := func(s *Style) {
		require.NoError(t, s.SetTransitionConfig(TranslateX, 1, nil))
		require.NoError(t, SetNext(s, TranslateX, 100.0))
	}

	frame(t, s, 0.016, func(s *Style) { require.NoError(t, SetNext(s, TranslateX, 0.0)) })
	require.Equal(t, 0.0, float(t, s, TranslateX))

	frame(t, s, 0.5, declare)
	assert.Equal(t, 50.0, float(t, s, TranslateX))
	assert.True(t, s.Interpolating(TranslateX))

	frame(t, s, 0.25, declare)
	assert.Equal(t, 75.0, float(t, s, TranslateX))

	frame(t, s, 0.25, declare)
	assert.Equal(t, 100.0, float(t, s, TranslateX))
	assert.False(t, s.Interpolating(TranslateX))
	assert.Zero(t, s.ActiveInterpolations())

	// Converged: further frames leave the value alone.
	frame(t, s, 0.25, declare)
	assert.Equal(t, 100.0, float(t, s, TranslateX))
	assert.Zero(t, s.ActiveInterpolations())
}

func TestStyleTransitionOvershootSnaps(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	frame(t, s, 0, func(s *Style) { require.NoError(t, SetNext(s, BackgroundColor, Black)) })
	frame(t, s, 5, func(s *Style) {
		require.NoError(t, s.SetTransitionConfig(BackgroundColor, 0.3, EaseOutBack))
		require.NoError(t, SetNext(s, BackgroundColor, White))
	})

	got, err := Get[Color](s, BackgroundColor)
	require.NoError(t, err)
	assert.Equal(t, White, got)
}

func TestStyleEasedRatioIsClamped(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	frame(t, s, 0, func(s *Style) { require.NoError(t, SetNext(s, Rotate, 0.0)) })
	frame(t, s, 0.9, func(s *Style) {
		require.NoError(t, s.SetTransitionConfig(Rotate, 1, EaseOutBack))
		require.NoError(t, SetNext(s, Rotate, 90.0))
	})
	assert.LessOrEqual(t, float(t, s, Rotate), 90.0)
}

func TestStyleRetarget(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	frame(t, s, 0, func(s *Style) { require.NoError(t, SetNext(s, TranslateX, 0.0)) })

	frame(t, s, 0.25, func(s *Style) {
		require.NoError(t, s.SetTransitionConfig(TranslateX, 1, nil))
		require.NoError(t, SetNext(s, TranslateX, 100.0))
	})
	require.Equal(t, 25.0, float(t, s, TranslateX))

	// New target: restart from 25 with elapsed reset, so 0.25s covers a
	// quarter of the way from 25 to 0.
	frame(t, s, 0.25, func(s *Style) {
		require.NoError(t, s.SetTransitionConfig(TranslateX, 1, nil))
		require.NoError(t, SetNext(s, TranslateX, 0.0))
	})
	assert.Equal(t, 18.75, float(t, s, TranslateX))
}

func TestStyleTransitionConfigDoesNotPersist(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	frame(t, s, 0, func(s *Style) { require.NoError(t, SetNext(s, Width, Pixels(0))) })

	frame(t, s, 0.25, func(s *Style) {
		require.NoError(t, s.SetTransitionConfig(Width, 1, nil))
		require.NoError(t, SetNext(s, Width, Pixels(100)))
	})
	w, err := Get[UnitValue](s, Width)
	require.NoError(t, err)
	require.Equal(t, Pixels(25), w)

	frame(t, s, 0.25, func(s *Style) { require.NoError(t, SetNext(s, Width, Pixels(100))) })
	w, err = Get[UnitValue](s, Width)
	require.NoError(t, err)
	assert.Equal(t, Pixels(100), w)
	assert.False(t, s.Interpolating(Width))
}

func TestStyleNoAnimationOnFirstAppearance(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	frame(t, s, 0.1, func(s *Style) {
		require.NoError(t, s.SetTransitionConfig(Rotate, 1, nil))
		require.NoError(t, SetNext(s, Rotate, 90.0))
	})
	assert.Equal(t, 90.0, float(t, s, Rotate))
	assert.Zero(t, s.ActiveInterpolations())
}

func TestStyleSeedsTransitionStartAfterFirstFrame(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	parent, child := pool.Acquire(), pool.Acquire()
	require.NoError(t, child.SetParent(parent))
	require.NoError(t, SetDirect(parent, Rotate, 40.0))

	frame(t, child, 0, nil)

	// No value of its own yet: the animation starts from the parent's value.
	frame(t, child, 0.5, func(s *Style) {
		require.NoError(t, s.SetTransitionConfig(Rotate, 1, nil))
		require.NoError(t, SetNext(s, Rotate, 80.0))
	})
	assert.Equal(t, 60.0, float(t, child, Rotate))
}

func TestStyleSetDirectDropsInterpolation(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	frame(t, s, 0, func(s *Style) { require.NoError(t, SetNext(s, Rotate, 0.0)) })
	frame(t, s, 0.1, func(s *Style) {
		require.NoError(t, s.SetTransitionConfig(Rotate, 1, nil))
		require.NoError(t, SetNext(s, Rotate, 90.0))
	})
	require.True(t, s.Interpolating(Rotate))

	require.NoError(t, SetDirect(s, Rotate, 30.0))
	assert.False(t, s.Interpolating(Rotate))
	assert.Equal(t, 30.0, float(t, s, Rotate))

	s.Update(0.1)
	assert.Equal(t, 30.0, float(t, s, Rotate))
}

func TestStyleClearValue(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	require.NoError(t, SetDirect(s, FontSize, 30.0))
	s.ClearValue(FontSize)
	assert.False(t, s.HasValue(FontSize))
	assert.Equal(t, FontSize.Default(), s.Value(FontSize))

	s.Update(0.1)
	assert.False(t, s.HasValue(FontSize))
}

func TestStyleClearValueResumesInheritance(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	parent, child := pool.Acquire(), pool.Acquire()
	require.NoError(t, child.SetParent(parent))
	require.NoError(t, SetDirect(parent, FontSize, 20.0))

	require.NoError(t, child.SetTransitionConfig(FontSize, 1, nil))
	child.Update(0.1)
	child.EndOfFrame()

	child.ClearValue(FontSize)
	child.Update(0.1)
	child.EndOfFrame()
	require.NoError(t, SetDirect(parent, FontSize, 30.0))

	assert.False(t, child.HasValue(FontSize))
	assert.Equal(t, FromFloat(30), child.Value(FontSize))
}

func TestStyleErrors(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()

	err := s.SetDirectValue(TextColor, FromFloat(1))
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.False(t, s.HasValue(TextColor), "failed set must not change state")

	err = s.SetNextValue(Property(77), FromFloat(1))
	assert.ErrorIs(t, err, ErrUnknownProperty)

	err = SetNext(s, Width, 3.0)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Get[float64](s, TextColor)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Get[float64](s, Property(77))
	assert.ErrorIs(t, err, ErrUnknownProperty)

	err = s.SetTransitionConfig(Rotate, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestStyleParentLinks(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	a, b, c := pool.Acquire(), pool.Acquire(), pool.Acquire()

	require.NoError(t, b.SetParent(a))
	require.NoError(t, c.SetParent(b))
	assert.ErrorIs(t, a.SetParent(c), ErrParentCycle)
	assert.ErrorIs(t, a.SetParent(a), ErrParentCycle)

	foreign := NewPool(DefaultPoolConfig()).Acquire()
	assert.ErrorIs(t, a.SetParent(foreign), ErrForeignParent)

	// Releasing the parent severs the weak link.
	require.NoError(t, SetDirect(b, Rotate, 10.0))
	assert.Equal(t, 10.0, float(t, c, Rotate))
	pool.Release(b)
	assert.Nil(t, c.Parent())
	assert.Equal(t, 0.0, float(t, c, Rotate))
}

func TestStyleAttachParent(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	parent, child := pool.Acquire(), pool.Acquire()
	require.NoError(t, SetDirect(parent, Rotate, 15.0))

	require.NoError(t, child.AttachParent(parent))
	assert.Same(t, parent, child.Parent())
	assert.Equal(t, 15.0, float(t, child, Rotate))

	foreign := NewPool(DefaultPoolConfig()).Acquire()
	assert.ErrorIs(t, child.AttachParent(foreign), ErrForeignParent)
	assert.Same(t, parent, child.Parent(), "failed attach keeps the old link")

	require.NoError(t, child.AttachParent(nil))
	assert.Nil(t, child.Parent())
}

func TestStyleReturnToPoolIsIdempotent(t *testing.T) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	require.NoError(t, SetDirect(s, Rotate, 10.0))
	s.ReturnToPool()
	s.ReturnToPool()
	assert.False(t, s.HasValue(Rotate))
	assert.True(t, s.FirstFrame())
}

func BenchmarkStyleUpdate(b *testing.B) {
	s := NewPool(DefaultPoolConfig()).Acquire()
	s.Update(0)
	s.EndOfFrame()
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		target := float64(i % 2 * 100)
		_ = s.SetTransitionConfig(TranslateX, 0.3, EaseInOut)
		_ = SetNext(s, TranslateX, target)
		_ = SetNext(s, BackgroundColor, RGB(uint8(i), 0, 0))
		s.Update(0.016)
		s.EndOfFrame()
	}
}
