package retained

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/paper/style"
)

func buttonTemplates() *style.TemplateSet {
	ts := style.NewTemplateSet()
	ts.Family("button").
		Base(style.NewTemplate().
			Transition(style.BackgroundColor, 1, nil).
			BackgroundColor(style.Black).
			Width(style.Pixels(120))).
		Hovered(style.NewTemplate().BackgroundColor(style.White)).
		Active(style.NewTemplate().Scale(0.95)).
		Register()
	return ts
}

func newTestContext(t *testing.T, ts *style.TemplateSet) *Context {
	t.Helper()
	ctx, err := NewContext(ts)
	require.NoError(t, err)
	return ctx
}

func color(t *testing.T, ctx *Context, id uint64, p style.Property) style.Color {
	t.Helper()
	v, ok := ctx.Value(id, p)
	require.True(t, ok, "element %d not registered", id)
	return v.Color()
}

func TestContextHoverTransition(t *testing.T) {
	ctx := newTestContext(t, buttonTemplates())

	declareButton := func(dt float64) FrameStats {
		ctx.BeginFrame()
		ctx.Open(1).Style("button")
		ctx.Close()
		stats, err := ctx.EndFrame(dt)
		require.NoError(t, err)
		return stats
	}

	stats := declareButton(0.016)
	assert.Equal(t, uint64(1), stats.Frame)
	assert.Equal(t, 1, stats.Elements)
	assert.Equal(t, style.Black, color(t, ctx, 1, style.BackgroundColor), "first appearance does not animate")

	ctx.States().SetHoverChain(1)
	declareButton(0.5)
	mid := style.Interpolate(style.FromColor(style.Black), style.FromColor(style.White), 0.5)
	assert.Equal(t, mid.Color(), color(t, ctx, 1, style.BackgroundColor))

	declareButton(0.5)
	assert.Equal(t, style.White, color(t, ctx, 1, style.BackgroundColor))

	// Leaving restarts from the current value toward the base color.
	ctx.States().SetHoverChain()
	declareButton(0.25)
	back := style.Interpolate(style.FromColor(style.White), style.FromColor(style.Black), 0.25)
	assert.Equal(t, back.Color(), color(t, ctx, 1, style.BackgroundColor))
}

func TestContextActiveOverlayWithoutTransition(t *testing.T) {
	ctx := newTestContext(t, buttonTemplates())
	ctx.States().SetPressChain(1)

	ctx.BeginFrame()
	ctx.Open(1).Style("button")
	ctx.Close()
	_, err := ctx.EndFrame(0.016)
	require.NoError(t, err)

	v, _ := ctx.Value(1, style.ScaleX)
	assert.Equal(t, 0.95, v.Float())
}

func TestContextInheritanceAndReclaim(t *testing.T) {
	ctx := newTestContext(t, nil)
	blue := style.RGB(0, 0, 255)

	ctx.BeginFrame()
	ctx.Open(1).Set(style.TextColor, style.FromColor(blue))
	ctx.Open(2)
	ctx.Close()
	ctx.Close()
	stats, err := ctx.EndFrame(0.016)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Live)
	assert.Equal(t, blue, color(t, ctx, 2, style.TextColor))

	ctx.States().Focus(2)
	ctx.BeginFrame()
	ctx.Open(1)
	ctx.Close()
	stats, err = ctx.EndFrame(0.016)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Reclaimed)
	assert.Equal(t, 1, stats.Live)

	_, ok := ctx.Value(2, style.TextColor)
	assert.False(t, ok)
	_, focused := ctx.States().Focused()
	assert.False(t, focused)
}

func TestContextErrors(t *testing.T) {
	tests := []struct {
		name    string
		declare func(*Context)
		want    error
	}{
		{
			name: "duplicate id",
			declare: func(c *Context) {
				c.Open(1)
				c.Close()
				c.Open(1)
				c.Close()
			},
			want: ErrDuplicateID,
		},
		{
			name:    "close without open",
			declare: func(c *Context) { c.Close() },
			want:    ErrUnbalanced,
		},
		{
			name:    "left open",
			declare: func(c *Context) { c.Open(1) },
			want:    ErrUnbalanced,
		},
		{
			name: "type mismatch",
			declare: func(c *Context) {
				c.Open(1).Set(style.BorderWidth, style.FromColor(style.White))
				c.Close()
			},
			want: style.ErrTypeMismatch,
		},
		{
			name: "negative duration",
			declare: func(c *Context) {
				c.Open(1).Transition(style.BorderWidth, -1, nil)
				c.Close()
			},
			want: style.ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, nil)
			ctx.BeginFrame()
			tt.declare(ctx)
			_, err := ctx.EndFrame(0.016)
			assert.ErrorIs(t, err, tt.want)

			// Errors do not carry over to the next frame.
			ctx.BeginFrame()
			_, err = ctx.EndFrame(0.016)
			assert.NoError(t, err)
		})
	}
}

func TestContextDuplicateDeclarationIsIgnored(t *testing.T) {
	ctx := newTestContext(t, nil)
	ctx.BeginFrame()
	ctx.Open(1).SetDirect(style.Width, style.FromUnit(style.Pixels(10)))
	ctx.Close()
	ctx.Open(1).
		SetDirect(style.Width, style.FromUnit(style.Pixels(99))).
		Set(style.FontSize, style.FromFloat(40))
	ctx.Close()
	_, err := ctx.EndFrame(0.016)
	require.ErrorIs(t, err, ErrDuplicateID)

	v, ok := ctx.Value(1, style.Width)
	require.True(t, ok)
	assert.Equal(t, style.Pixels(10), v.Unit())
	s, ok := ctx.Registry().Style(1)
	require.True(t, ok)
	assert.False(t, s.HasValue(style.FontSize))
}

func TestContextFirstErrorWins(t *testing.T) {
	ctx := newTestContext(t, nil)
	ctx.BeginFrame()
	ctx.Open(7).
		Set(style.BorderWidth, style.FromColor(style.White)).
		Transition(style.BorderWidth, -1, nil)
	ctx.Close()
	_, err := ctx.EndFrame(0)
	require.ErrorIs(t, err, style.ErrTypeMismatch)
	assert.NotErrorIs(t, err, style.ErrInvalidDuration)
	assert.Contains(t, err.Error(), "element 7")
}

func TestContextTransform(t *testing.T) {
	ctx := newTestContext(t, nil)
	ctx.BeginFrame()
	ctx.Open(1).SetDirect(style.TranslateX, style.FromFloat(10))
	ctx.Close()
	_, err := ctx.EndFrame(0)
	require.NoError(t, err)

	m, ok := ctx.Transform(1, style.Rect{Width: 100, Height: 50})
	require.True(t, ok)
	x, y := m.Apply(50, 25)
	assert.InDelta(t, 60, x, 1e-9)
	assert.InDelta(t, 25, y, 1e-9)

	m, ok = ctx.Transform(42, style.Rect{})
	assert.False(t, ok)
	assert.True(t, m.IsIdentity())
}

func TestContextBuilderSetters(t *testing.T) {
	ctx := newTestContext(t, nil)
	ctx.BeginFrame()
	b := ctx.Open(3).
		BackgroundColor(style.White).
		Width(style.Percent(50)).
		Height(style.Pixels(20))
	ctx.Close()
	_, err := ctx.EndFrame(0)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), b.ID())
	assert.Equal(t, style.White, color(t, ctx, 3, style.BackgroundColor))
	w, _ := ctx.Value(3, style.Width)
	assert.Equal(t, style.Percent(50), w.Unit())
	h, _ := ctx.Value(3, style.Height)
	assert.Equal(t, style.Pixels(20), h.Unit())
}
