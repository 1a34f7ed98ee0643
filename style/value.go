package style

import "fmt"

// Kind is the tag of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindColor
	KindGradient
	KindBoxShadow
	KindTransform
	KindVector4
	KindFloat
	KindInt
	KindUnit
)

func (k Kind) valid() bool { return k >= KindColor && k <= KindUnit }

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindGradient:
		return "gradient"
	case KindBoxShadow:
		return "box-shadow"
	case KindTransform:
		return "transform"
	case KindVector4:
		return "vector4"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindUnit:
		return "unit"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a tagged union over every type a property can hold.
//
// The payload is a fixed block of colors and floats so values are copied
// by value and never boxed. Unused payload slots are always zero, which
// makes == a correct equality test.
type Value struct {
	kind Kind
	tag  uint8 // Unit or GradientType
	c    [2]Color
	f    [6]float64
}

// Variant lists the Go types a Value can carry.
type Variant interface {
	Color | Gradient | BoxShadow | Transform2D | Vector4 | float64 | int32 | UnitValue
}

// FromColor wraps a Color.
func FromColor(c Color) Value {
	return Value{kind: KindColor, c: [2]Color{c}}
}

// FromGradient wraps a Gradient.
func FromGradient(g Gradient) Value {
	return Value{
		kind: KindGradient,
		tag:  uint8(g.Type),
		c:    [2]Color{g.Inner, g.Outer},
		f:    [6]float64{g.X1, g.Y1, g.X2, g.Y2, g.Radius, g.Feather},
	}
}

// FromShadow wraps a BoxShadow.
func FromShadow(s BoxShadow) Value {
	return Value{
		kind: KindBoxShadow,
		c:    [2]Color{s.Color},
		f:    [6]float64{s.OffsetX, s.OffsetY, s.Blur, s.Spread},
	}
}

// FromTransform wraps a Transform2D.
func FromTransform(m Transform2D) Value {
	return Value{kind: KindTransform, f: [6]float64{m.A, m.B, m.C, m.D, m.E, m.F}}
}

// FromVector4 wraps a Vector4.
func FromVector4(v Vector4) Value {
	return Value{kind: KindVector4, f: [6]float64{v.X, v.Y, v.Z, v.W}}
}

// FromFloat wraps a float64.
func FromFloat(v float64) Value {
	return Value{kind: KindFloat, f: [6]float64{v}}
}

// FromInt wraps an int32. int32 is exactly representable in the float payload.
func FromInt(v int32) Value {
	return Value{kind: KindInt, f: [6]float64{float64(v)}}
}

// FromUnit wraps a UnitValue.
func FromUnit(u UnitValue) Value {
	return Value{kind: KindUnit, tag: uint8(u.Unit), f: [6]float64{u.Value}}
}

// ValueOf wraps any Variant.
func ValueOf[T Variant](v T) Value {
	switch x := any(v).(type) {
	case Color:
		return FromColor(x)
	case Gradient:
		return FromGradient(x)
	case BoxShadow:
		return FromShadow(x)
	case Transform2D:
		return FromTransform(x)
	case Vector4:
		return FromVector4(x)
	case float64:
		return FromFloat(x)
	case int32:
		return FromInt(x)
	case UnitValue:
		return FromUnit(x)
	}
	panic("unreachable")
}

// KindOf returns the Kind carried by values of type T.
func KindOf[T Variant]() Kind {
	var zero T
	switch any(zero).(type) {
	case Color:
		return KindColor
	case Gradient:
		return KindGradient
	case BoxShadow:
		return KindBoxShadow
	case Transform2D:
		return KindTransform
	case Vector4:
		return KindVector4
	case float64:
		return KindFloat
	case int32:
		return KindInt
	case UnitValue:
		return KindUnit
	}
	return KindInvalid
}

// As unwraps v as a T, failing with ErrTypeMismatch when the tag differs.
func As[T Variant](v Value) (T, error) {
	var out T
	if want := KindOf[T](); v.kind != want {
		return out, fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, want, v.kind)
	}
	switch p := any(&out).(type) {
	case *Color:
		*p = v.Color()
	case *Gradient:
		*p = v.Gradient()
	case *BoxShadow:
		*p = v.Shadow()
	case *Transform2D:
		*p = v.Transform()
	case *Vector4:
		*p = v.Vector4()
	case *float64:
		*p = v.Float()
	case *int32:
		*p = v.Int()
	case *UnitValue:
		*p = v.Unit()
	}
	return out, nil
}

// Kind returns the tag.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v holds nothing.
func (v Value) IsZero() bool { return v.kind == KindInvalid }

// Equal reports whether both values carry the same variant and payload.
func (v Value) Equal(o Value) bool { return v == o }

// The accessors below read the payload without checking the tag;
// use As for a checked conversion.

// Color returns the color payload.
func (v Value) Color() Color { return v.c[0] }

// Gradient returns the gradient payload.
func (v Value) Gradient() Gradient {
	return Gradient{
		Type:    GradientType(v.tag),
		X1:      v.f[0],
		Y1:      v.f[1],
		X2:      v.f[2],
		Y2:      v.f[3],
		Radius:  v.f[4],
		Feather: v.f[5],
		Inner:   v.c[0],
		Outer:   v.c[1],
	}
}

// Shadow returns the box-shadow payload.
func (v Value) Shadow() BoxShadow {
	return BoxShadow{OffsetX: v.f[0], OffsetY: v.f[1], Blur: v.f[2], Spread: v.f[3], Color: v.c[0]}
}

// Transform returns the transform payload.
func (v Value) Transform() Transform2D {
	return Transform2D{A: v.f[0], B: v.f[1], C: v.f[2], D: v.f[3], E: v.f[4], F: v.f[5]}
}

// Vector4 returns the vector payload.
func (v Value) Vector4() Vector4 { return Vector4{X: v.f[0], Y: v.f[1], Z: v.f[2], W: v.f[3]} }

// Float returns the float payload.
func (v Value) Float() float64 { return v.f[0] }

// Int returns the integer payload.
func (v Value) Int() int32 { return int32(v.f[0]) }

// Unit returns the length payload.
func (v Value) Unit() UnitValue { return UnitValue{Unit: Unit(v.tag), Value: v.f[0]} }

func (v Value) String() string {
	switch v.kind {
	case KindColor:
		return v.Color().String()
	case KindGradient:
		g := v.Gradient()
		return fmt.Sprintf("gradient(%d %s→%s)", g.Type, g.Inner, g.Outer)
	case KindBoxShadow:
		s := v.Shadow()
		return fmt.Sprintf("shadow(%g %g %g %g %s)", s.OffsetX, s.OffsetY, s.Blur, s.Spread, s.Color)
	case KindTransform:
		m := v.Transform()
		return fmt.Sprintf("matrix(%g %g %g %g %g %g)", m.A, m.B, m.C, m.D, m.E, m.F)
	case KindVector4:
		return fmt.Sprintf("vec4(%g %g %g %g)", v.f[0], v.f[1], v.f[2], v.f[3])
	case KindFloat:
		return fmt.Sprintf("%g", v.Float())
	case KindInt:
		return fmt.Sprintf("%d", v.Int())
	case KindUnit:
		return v.Unit().String()
	default:
		return "<invalid>"
	}
}
