package style

import (
	"fmt"
	"math"
)

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA8 constructs a Color from red, green, blue, alpha bytes.
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R(), c.G(), c.B(), c.A())
}

// Common colors.
const (
	Transparent = Color(0x00000000)
	Black       = Color(0xFF000000)
	White       = Color(0xFFFFFFFF)
)

// Vector4 holds four components, used for per-corner radii.
type Vector4 struct {
	X, Y, Z, W float64
}

// Unit selects how a UnitValue is interpreted by layout.
type Unit uint8

const (
	UnitPixels Unit = iota
	UnitPercent
	UnitStretch
	UnitAuto
)

func (u Unit) String() string {
	switch u {
	case UnitPixels:
		return "px"
	case UnitPercent:
		return "%"
	case UnitStretch:
		return "stretch"
	case UnitAuto:
		return "auto"
	default:
		return fmt.Sprintf("Unit(%d)", uint8(u))
	}
}

// UnitValue is a length understood by the layout solver.
type UnitValue struct {
	Unit  Unit
	Value float64
}

// Pixels returns an absolute length.
func Pixels(v float64) UnitValue { return UnitValue{Unit: UnitPixels, Value: v} }

// Percent returns a length relative to the parent (0-100).
func Percent(v float64) UnitValue { return UnitValue{Unit: UnitPercent, Value: v} }

// Stretch returns a flexible length with the given weight.
func Stretch(factor float64) UnitValue { return UnitValue{Unit: UnitStretch, Value: factor} }

// Auto is a length resolved entirely by layout.
var Auto = UnitValue{Unit: UnitAuto}

func (u UnitValue) String() string {
	switch u.Unit {
	case UnitAuto:
		return "auto"
	case UnitStretch:
		return fmt.Sprintf("stretch(%g)", u.Value)
	default:
		return fmt.Sprintf("%g%s", u.Value, u.Unit)
	}
}

// GradientType selects the gradient shape.
type GradientType uint8

const (
	GradientNone GradientType = iota
	GradientLinear
	GradientRadial
	GradientBox
)

// Gradient is a two-color paint.
//
// Linear gradients run from (X1,Y1) to (X2,Y2). Radial gradients are centered
// on (X1,Y1) with inner radius Radius and outer radius Radius+Feather. Box
// gradients cover the rectangle (X1,Y1,X2,Y2) with corner Radius and edge Feather.
type Gradient struct {
	Type           GradientType
	X1, Y1, X2, Y2 float64
	Radius         float64
	Feather        float64
	Inner, Outer   Color
}

// NoGradient disables gradient painting.
var NoGradient = Gradient{}

// BoxShadow is a blurred shadow drawn behind an element.
type BoxShadow struct {
	OffsetX, OffsetY float64
	Blur             float64
	Spread           float64
	Color            Color
}

// NoShadow disables the shadow.
var NoShadow = BoxShadow{}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Transform2D is a 2D affine matrix mapping (x, y) to
// (A*x + C*y + E, B*x + D*y + F).
type Transform2D struct {
	A, B, C, D, E, F float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform2D{A: 1, D: 1}

// Translation returns a transform moving points by (x, y).
func Translation(x, y float64) Transform2D {
	return Transform2D{A: 1, D: 1, E: x, F: y}
}

// Scaling returns a transform scaling about the origin.
func Scaling(sx, sy float64) Transform2D {
	return Transform2D{A: sx, D: sy}
}

// Rotation returns a transform rotating about the origin by degrees.
func Rotation(degrees float64) Transform2D {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return Transform2D{A: c, B: s, C: -s, D: c}
}

// SkewingX returns a horizontal shear by degrees.
func SkewingX(degrees float64) Transform2D {
	return Transform2D{A: 1, C: math.Tan(degrees * math.Pi / 180), D: 1}
}

// SkewingY returns a vertical shear by degrees.
func SkewingY(degrees float64) Transform2D {
	return Transform2D{A: 1, B: math.Tan(degrees * math.Pi / 180), D: 1}
}

// Then returns the transform that applies m first and n second.
func (m Transform2D) Then(n Transform2D) Transform2D {
	return Transform2D{
		A: n.A*m.A + n.C*m.B,
		B: n.B*m.A + n.D*m.B,
		C: n.A*m.C + n.C*m.D,
		D: n.B*m.C + n.D*m.D,
		E: n.A*m.E + n.C*m.F + n.E,
		F: n.B*m.E + n.D*m.F + n.F,
	}
}

// Apply maps a point through the transform.
func (m Transform2D) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Invert returns the inverse transform. ok is false for singular matrices.
func (m Transform2D) Invert() (Transform2D, bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Transform2D{}, false
	}
	inv := 1 / det
	return Transform2D{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Transform2D) IsIdentity() bool {
	return m == Identity
}
