package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/agiangrant/paper/style"
)

// decodeValue converts a raw theme value into a value of the kind p declares.
func decodeValue(p style.Property, raw any) (style.Value, error) {
	switch p.Kind() {
	case style.KindColor:
		c, err := decodeColor(raw)
		if err != nil {
			return style.Value{}, err
		}
		return style.FromColor(c), nil
	case style.KindFloat:
		f, ok := number(raw)
		if !ok {
			return style.Value{}, fmt.Errorf("want a number, got %T", raw)
		}
		return style.FromFloat(f), nil
	case style.KindInt:
		f, ok := number(raw)
		if !ok {
			return style.Value{}, fmt.Errorf("want an integer, got %T", raw)
		}
		return style.FromInt(int32(f)), nil
	case style.KindUnit:
		u, err := decodeUnit(raw)
		if err != nil {
			return style.Value{}, err
		}
		return style.FromUnit(u), nil
	case style.KindVector4:
		v, err := decodeVector4(raw)
		if err != nil {
			return style.Value{}, err
		}
		return style.FromVector4(v), nil
	case style.KindBoxShadow:
		s, err := decodeShadow(raw)
		if err != nil {
			return style.Value{}, err
		}
		return style.FromShadow(s), nil
	case style.KindGradient:
		g, err := decodeGradient(raw)
		if err != nil {
			return style.Value{}, err
		}
		return style.FromGradient(g), nil
	case style.KindTransform:
		m, err := decodeTransform(raw)
		if err != nil {
			return style.Value{}, err
		}
		return style.FromTransform(m), nil
	default:
		return style.Value{}, fmt.Errorf("%w: %s", style.ErrUnsupportedKind, p.Kind())
	}
}

var namedColors = map[string]style.Color{
	"transparent": style.Transparent,
	"black":       style.Black,
	"white":       style.White,
}

// decodeColor accepts "#rgb", "#rrggbb", "#rrggbbaa" and a few names.
func decodeColor(raw any) (style.Color, error) {
	s, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("want a color string, got %T", raw)
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	alpha := uint8(0xFF)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("color %q: bad alpha", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return style.RGBA8(r, g, b, alpha), nil
}

// decodeUnit accepts a bare number (pixels), "120px", "50%", "auto",
// "stretch" and "stretch(2)".
func decodeUnit(raw any) (style.UnitValue, error) {
	if f, ok := number(raw); ok {
		return style.Pixels(f), nil
	}
	s, ok := raw.(string)
	if !ok {
		return style.UnitValue{}, fmt.Errorf("want a length, got %T", raw)
	}
	s = strings.TrimSpace(s)

	parse := func(num string) (float64, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("length %q: %w", s, err)
		}
		return f, nil
	}

	switch {
	case s == "auto":
		return style.Auto, nil
	case s == "stretch":
		return style.Stretch(1), nil
	case strings.HasPrefix(s, "stretch(") && strings.HasSuffix(s, ")"):
		f, err := parse(s[len("stretch(") : len(s)-1])
		return style.Stretch(f), err
	case strings.HasSuffix(s, "px"):
		f, err := parse(strings.TrimSuffix(s, "px"))
		return style.Pixels(f), err
	case strings.HasSuffix(s, "%"):
		f, err := parse(strings.TrimSuffix(s, "%"))
		return style.Percent(f), err
	default:
		f, err := parse(s)
		return style.Pixels(f), err
	}
}

// decodeVector4 accepts one number for all four components or a list of four.
func decodeVector4(raw any) (style.Vector4, error) {
	if f, ok := number(raw); ok {
		return style.Vector4{X: f, Y: f, Z: f, W: f}, nil
	}
	fs, err := numbers(raw, 4)
	if err != nil {
		return style.Vector4{}, err
	}
	return style.Vector4{X: fs[0], Y: fs[1], Z: fs[2], W: fs[3]}, nil
}

func decodeTransform(raw any) (style.Transform2D, error) {
	fs, err := numbers(raw, 6)
	if err != nil {
		return style.Transform2D{}, err
	}
	return style.Transform2D{A: fs[0], B: fs[1], C: fs[2], D: fs[3], E: fs[4], F: fs[5]}, nil
}

// decodeShadow reads a table with x, y, blur, spread and color.
func decodeShadow(raw any) (style.BoxShadow, error) {
	t, ok := raw.(map[string]any)
	if !ok {
		return style.BoxShadow{}, fmt.Errorf("want a shadow table, got %T", raw)
	}
	var s style.BoxShadow
	r := tableReader{t: t}
	s.OffsetX = r.float("x")
	s.OffsetY = r.float("y")
	s.Blur = r.float("blur")
	s.Spread = r.float("spread")
	s.Color = r.color("color", style.Black)
	return s, r.err()
}

var gradientTypes = map[string]style.GradientType{
	"none":   style.GradientNone,
	"linear": style.GradientLinear,
	"radial": style.GradientRadial,
	"box":    style.GradientBox,
}

func decodeGradient(raw any) (style.Gradient, error) {
	t, ok := raw.(map[string]any)
	if !ok {
		return style.Gradient{}, fmt.Errorf("want a gradient table, got %T", raw)
	}
	var g style.Gradient
	r := tableReader{t: t}

	kind := "linear"
	if v, ok := t["type"]; ok {
		kind, _ = v.(string)
	}
	gt, ok := gradientTypes[kind]
	if !ok {
		return style.Gradient{}, fmt.Errorf("unknown gradient type %q", kind)
	}
	g.Type = gt
	g.X1, g.Y1 = r.float("x1"), r.float("y1")
	g.X2, g.Y2 = r.float("x2"), r.float("y2")
	g.Radius = r.float("radius")
	g.Feather = r.float("feather")
	g.Inner = r.color("inner", style.Transparent)
	g.Outer = r.color("outer", style.Transparent)
	return g, r.err()
}

// tableReader reads optional typed fields from a decoded table and keeps
// the first error.
type tableReader struct {
	t     map[string]any
	first error
}

func (r *tableReader) float(key string) float64 {
	v, ok := r.t[key]
	if !ok {
		return 0
	}
	f, ok := number(v)
	if !ok && r.first == nil {
		r.first = fmt.Errorf("%s: want a number, got %T", key, v)
	}
	return f
}

func (r *tableReader) color(key string, def style.Color) style.Color {
	v, ok := r.t[key]
	if !ok {
		return def
	}
	c, err := decodeColor(v)
	if err != nil && r.first == nil {
		r.first = fmt.Errorf("%s: %w", key, err)
	}
	return c
}

func (r *tableReader) err() error { return r.first }

// number normalizes the numeric types produced by the TOML and YAML decoders.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func numbers(raw any, n int) ([]float64, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("want a list of %d numbers, got %T", n, raw)
	}
	if len(list) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(list))
	}
	out := make([]float64, n)
	for i, v := range list {
		f, ok := number(v)
		if !ok {
			return nil, fmt.Errorf("element %d: want a number, got %T", i, v)
		}
		out[i] = f
	}
	return out, nil
}
