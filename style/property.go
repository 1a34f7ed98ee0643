package style

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
)

// Property identifies one stylable attribute of an element.
type Property uint8

const (
	// Visual
	BackgroundColor Property = iota
	BackgroundGradient
	BorderColor
	BorderWidth
	Rounded
	Shadow

	// Sizing
	AspectRatio
	Width
	Height
	MinWidth
	MaxWidth
	MinHeight
	MaxHeight

	// Positioning
	Left
	Right
	Top
	Bottom
	MinLeft
	MaxLeft
	MinRight
	MaxRight
	MinTop
	MaxTop
	MinBottom
	MaxBottom

	// Child layout
	ChildLeft
	ChildRight
	ChildTop
	ChildBottom
	RowBetween
	ColBetween

	// Border spacing
	BorderLeft
	BorderRight
	BorderTop
	BorderBottom

	// Transform
	TranslateX
	TranslateY
	ScaleX
	ScaleY
	Rotate
	OriginX
	OriginY
	SkewX
	SkewY
	Transform

	// Text
	TextColor
	WordSpacing
	LetterSpacing
	LineHeight
	TabSize
	FontSize

	// PropertyCount is the number of defined properties.
	PropertyCount
)

type propertyInfo struct {
	name string
	kind Kind
	def  Value
}

var maxPixels = Pixels(math.MaxFloat64)

// schema maps every property to its name, kind and default value.
// It is never mutated after package initialization.
var schema = [PropertyCount]propertyInfo{
	BackgroundColor:    {"background-color", KindColor, FromColor(Transparent)},
	BackgroundGradient: {"background-gradient", KindGradient, FromGradient(NoGradient)},
	BorderColor:        {"border-color", KindColor, FromColor(Transparent)},
	BorderWidth:        {"border-width", KindFloat, FromFloat(0)},
	Rounded:            {"rounded", KindVector4, FromVector4(Vector4{})},
	Shadow:             {"box-shadow", KindBoxShadow, FromShadow(NoShadow)},

	AspectRatio: {"aspect-ratio", KindFloat, FromFloat(-1)},
	Width:       {"width", KindUnit, FromUnit(Stretch(1))},
	Height:      {"height", KindUnit, FromUnit(Stretch(1))},
	MinWidth:    {"min-width", KindUnit, FromUnit(Pixels(0))},
	MaxWidth:    {"max-width", KindUnit, FromUnit(maxPixels)},
	MinHeight:   {"min-height", KindUnit, FromUnit(Pixels(0))},
	MaxHeight:   {"max-height", KindUnit, FromUnit(maxPixels)},

	Left:      {"left", KindUnit, FromUnit(Auto)},
	Right:     {"right", KindUnit, FromUnit(Auto)},
	Top:       {"top", KindUnit, FromUnit(Auto)},
	Bottom:    {"bottom", KindUnit, FromUnit(Auto)},
	MinLeft:   {"min-left", KindUnit, FromUnit(Pixels(0))},
	MaxLeft:   {"max-left", KindUnit, FromUnit(maxPixels)},
	MinRight:  {"min-right", KindUnit, FromUnit(Pixels(0))},
	MaxRight:  {"max-right", KindUnit, FromUnit(maxPixels)},
	MinTop:    {"min-top", KindUnit, FromUnit(Pixels(0))},
	MaxTop:    {"max-top", KindUnit, FromUnit(maxPixels)},
	MinBottom: {"min-bottom", KindUnit, FromUnit(Pixels(0))},
	MaxBottom: {"max-bottom", KindUnit, FromUnit(maxPixels)},

	ChildLeft:   {"child-left", KindUnit, FromUnit(Auto)},
	ChildRight:  {"child-right", KindUnit, FromUnit(Auto)},
	ChildTop:    {"child-top", KindUnit, FromUnit(Auto)},
	ChildBottom: {"child-bottom", KindUnit, FromUnit(Auto)},
	RowBetween:  {"row-between", KindUnit, FromUnit(Auto)},
	ColBetween:  {"col-between", KindUnit, FromUnit(Auto)},

	BorderLeft:   {"border-left", KindUnit, FromUnit(Pixels(0))},
	BorderRight:  {"border-right", KindUnit, FromUnit(Pixels(0))},
	BorderTop:    {"border-top", KindUnit, FromUnit(Pixels(0))},
	BorderBottom: {"border-bottom", KindUnit, FromUnit(Pixels(0))},

	TranslateX: {"translate-x", KindFloat, FromFloat(0)},
	TranslateY: {"translate-y", KindFloat, FromFloat(0)},
	ScaleX:     {"scale-x", KindFloat, FromFloat(1)},
	ScaleY:     {"scale-y", KindFloat, FromFloat(1)},
	Rotate:     {"rotate", KindFloat, FromFloat(0)},
	OriginX:    {"origin-x", KindFloat, FromFloat(0.5)},
	OriginY:    {"origin-y", KindFloat, FromFloat(0.5)},
	SkewX:      {"skew-x", KindFloat, FromFloat(0)},
	SkewY:      {"skew-y", KindFloat, FromFloat(0)},
	Transform:  {"transform", KindTransform, FromTransform(Identity)},

	TextColor:     {"text-color", KindColor, FromColor(White)},
	WordSpacing:   {"word-spacing", KindFloat, FromFloat(0)},
	LetterSpacing: {"letter-spacing", KindFloat, FromFloat(0)},
	LineHeight:    {"line-height", KindFloat, FromFloat(1)},
	TabSize:       {"tab-size", KindInt, FromInt(4)},
	FontSize:      {"font-size", KindFloat, FromFloat(16)},
}

var propertyByName = func() map[string]Property {
	m := make(map[string]Property, PropertyCount)
	for p := Property(0); p < PropertyCount; p++ {
		m[schema[p].name] = p
	}
	return m
}()

// Valid reports whether p is part of the schema.
func (p Property) Valid() bool { return p < PropertyCount }

// Kind returns the value kind declared for p, or KindInvalid.
func (p Property) Kind() Kind {
	if !p.Valid() {
		return KindInvalid
	}
	return schema[p].kind
}

// Default returns the schema default for p.
func (p Property) Default() Value {
	if !p.Valid() {
		return Value{}
	}
	return schema[p].def
}

// String returns the kebab-case property name used in theme files.
func (p Property) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Property(%d)", uint8(p))
	}
	return schema[p].name
}

// ParseProperty looks up a property by its kebab-case name.
func ParseProperty(name string) (Property, error) {
	p, ok := propertyByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return p, nil
}

// Properties returns every property in declaration order.
func Properties() []Property {
	out := make([]Property, PropertyCount)
	for i := range out {
		out[i] = Property(i)
	}
	return out
}

// check validates that v may be stored in p.
func (p Property) check(v Value) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownProperty, uint8(p))
	}
	if !v.kind.valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, v.kind)
	}
	if want := schema[p].kind; v.kind != want {
		return fmt.Errorf("%w: %s wants %s, got %s", ErrTypeMismatch, p, want, v.kind)
	}
	return nil
}

// PropertySet is a set of properties. The zero value is empty.
type PropertySet uint64

// Add inserts p.
func (s *PropertySet) Add(p Property) { *s |= 1 << p }

// Remove deletes p.
func (s *PropertySet) Remove(p Property) { *s &^= 1 << p }

// Has reports whether p is in the set.
func (s PropertySet) Has(p Property) bool { return p.Valid() && s&(1<<p) != 0 }

// Len returns the number of members.
func (s PropertySet) Len() int { return bits.OnesCount64(uint64(s)) }

// Clear empties the set.
func (s *PropertySet) Clear() { *s = 0 }

// All yields every member in ascending order.
func (s PropertySet) All() iter.Seq[Property] {
	return func(yield func(Property) bool) {
		for rest := uint64(s); rest != 0; rest &= rest - 1 {
			if !yield(Property(bits.TrailingZeros64(rest))) {
				return
			}
		}
	}
}
