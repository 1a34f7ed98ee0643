package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateApplyOrder(t *testing.T) {
	tpl := NewTemplate().
		BackgroundColor(Black).
		Width(Pixels(10)).
		BackgroundColor(White)
	require.NoError(t, tpl.Err())
	assert.Equal(t, 3, tpl.Len())

	s := NewPool(DefaultPoolConfig()).Acquire()
	require.NoError(t, tpl.ApplyTo(s))
	s.Update(0)

	bg, err := Get[Color](s, BackgroundColor)
	require.NoError(t, err)
	assert.Equal(t, White, bg, "later assignment wins")

	w, err := Get[UnitValue](s, Width)
	require.NoError(t, err)
	assert.Equal(t, Pixels(10), w)
}

func TestTemplateDirectAndTransition(t *testing.T) {
	tpl := NewTemplate().
		SetDirect(Rotate, FromFloat(15)).
		Transition(TranslateX, 1, EaseLinear).
		Set(TranslateX, FromFloat(100))
	require.NoError(t, tpl.Err())

	s := NewPool(DefaultPoolConfig()).Acquire()
	require.NoError(t, SetNext(s, TranslateX, 0.0))
	s.Update(0)
	s.EndOfFrame()

	require.NoError(t, tpl.ApplyTo(s))
	assert.Equal(t, 15.0, s.Value(Rotate).Float(), "direct assignment applies before Update")

	s.Update(0.5)
	assert.Equal(t, 50.0, s.Value(TranslateX).Float())
	assert.True(t, s.Interpolating(TranslateX))
}

func TestTemplateStickyError(t *testing.T) {
	tpl := NewTemplate().
		Set(TextColor, FromFloat(3)).
		BackgroundColor(Black).
		Transition(Rotate, -2, nil)
	assert.ErrorIs(t, tpl.Err(), ErrTypeMismatch)
	assert.Equal(t, 1, tpl.Len())

	s := NewPool(DefaultPoolConfig()).Acquire()
	assert.ErrorIs(t, tpl.ApplyTo(s), ErrTypeMismatch)
	assert.False(t, s.HasValue(BackgroundColor))
}

func TestTemplateSetDefine(t *testing.T) {
	ts := NewTemplateSet()

	base, err := ts.Define("base")
	require.NoError(t, err)
	base.TextColor(Black).FontSize(14)

	accent, err := ts.Define("accent")
	require.NoError(t, err)
	accent.TextColor(RGB(200, 0, 0))

	button, err := ts.Define("button", "base", "accent")
	require.NoError(t, err)
	button.Rounded(4, 4, 4, 4)

	got, ok := ts.Lookup("button")
	require.True(t, ok)
	assert.Same(t, button, got)

	s := NewPool(DefaultPoolConfig()).Acquire()
	require.NoError(t, ts.Apply(s, "button"))
	s.Update(0)

	c, err := Get[Color](s, TextColor)
	require.NoError(t, err)
	assert.Equal(t, RGB(200, 0, 0), c, "later parent overrides earlier")
	assert.Equal(t, 14.0, s.Value(FontSize).Float())
	assert.Equal(t, Vector4{X: 4, Y: 4, Z: 4, W: 4}, s.Value(Rounded).Vector4())

	assert.Equal(t, []string{"accent", "base", "button"}, ts.Names())
}

func TestTemplateSetUndefinedParent(t *testing.T) {
	ts := NewTemplateSet()
	_, err := ts.Define("card", "missing")
	assert.ErrorIs(t, err, ErrStyleNotFound)
	_, ok := ts.Lookup("card")
	assert.False(t, ok)

	err = ts.Apply(NewTemplate(), "nope")
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestApplyWithStates(t *testing.T) {
	ts := NewTemplateSet()
	ts.Family("button").
		Base(NewTemplate().BackgroundColor(Black).BorderWidth(1)).
		Hovered(NewTemplate().BackgroundColor(RGB(50, 50, 50))).
		Focused(NewTemplate().BorderWidth(3)).
		Active(NewTemplate().BackgroundColor(RGB(90, 90, 90))).
		Register()

	tests := []struct {
		name       string
		state      Interaction
		wantBg     Color
		wantBorder float64
	}{
		{"idle", Interaction{}, Black, 1},
		{"hovered", Interaction{Hovered: true}, RGB(50, 50, 50), 1},
		{"focused", Interaction{Focused: true}, Black, 3},
		{"hovered and active", Interaction{Hovered: true, Active: true}, RGB(90, 90, 90), 1},
		{"all", Interaction{Hovered: true, Focused: true, Active: true}, RGB(90, 90, 90), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPool(DefaultPoolConfig()).Acquire()
			require.NoError(t, ts.ApplyWithStates(s, "button", tt.state))
			s.Update(0)
			assert.Equal(t, tt.wantBg, s.Value(BackgroundColor).Color())
			assert.Equal(t, tt.wantBorder, s.Value(BorderWidth).Float())
		})
	}
}

func TestApplyWithStatesMissingTemplates(t *testing.T) {
	ts := NewTemplateSet()
	ts.Register(StateName("link", StateHovered), NewTemplate().TextColor(Black))

	s := NewPool(DefaultPoolConfig()).Acquire()
	require.NoError(t, ts.ApplyWithStates(s, "link", Interaction{Hovered: true, Focused: true}))
	s.Update(0)
	assert.Equal(t, Black, s.Value(TextColor).Color())
}

func TestFamilyRegistersNormal(t *testing.T) {
	ts := NewTemplateSet()
	ts.Family("input").Normal(NewTemplate().BorderWidth(1)).Register()

	_, ok := ts.Lookup("input")
	assert.True(t, ok)
	_, ok = ts.Lookup("input:normal")
	assert.True(t, ok)
	_, ok = ts.Lookup("input:hovered")
	assert.False(t, ok)
}
