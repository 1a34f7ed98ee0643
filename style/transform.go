package style

// TransformBuilder composes an element's transform properties into a matrix.
// The zero value is not ready for use; call NewTransformBuilder or Reset.
type TransformBuilder struct {
	translateX, translateY float64
	scaleX, scaleY         float64
	rotate                 float64
	skewX, skewY           float64
	originX, originY       float64
	custom                 Transform2D
	hasCustom              bool
}

// NewTransformBuilder returns a builder holding the default transform.
func NewTransformBuilder() *TransformBuilder {
	b := &TransformBuilder{}
	b.Reset()
	return b
}

// Reset restores translate 0, scale 1, rotate 0, skew 0, origin 0.5/0.5
// and drops the custom matrix.
func (b *TransformBuilder) Reset() {
	*b = TransformBuilder{
		scaleX:  1,
		scaleY:  1,
		originX: 0.5,
		originY: 0.5,
	}
}

func (b *TransformBuilder) SetTranslateX(x float64) *TransformBuilder { b.translateX = x; return b }
func (b *TransformBuilder) SetTranslateY(y float64) *TransformBuilder { b.translateY = y; return b }
func (b *TransformBuilder) SetScaleX(x float64) *TransformBuilder     { b.scaleX = x; return b }
func (b *TransformBuilder) SetScaleY(y float64) *TransformBuilder     { b.scaleY = y; return b }

// SetRotate sets the rotation angle in degrees.
func (b *TransformBuilder) SetRotate(degrees float64) *TransformBuilder { b.rotate = degrees; return b }

// SetSkewX sets the horizontal skew angle in degrees.
func (b *TransformBuilder) SetSkewX(degrees float64) *TransformBuilder { b.skewX = degrees; return b }

// SetSkewY sets the vertical skew angle in degrees.
func (b *TransformBuilder) SetSkewY(degrees float64) *TransformBuilder { b.skewY = degrees; return b }

// SetOriginX sets the pivot as a fraction of the rectangle width.
func (b *TransformBuilder) SetOriginX(x float64) *TransformBuilder { b.originX = x; return b }

// SetOriginY sets the pivot as a fraction of the rectangle height.
func (b *TransformBuilder) SetOriginY(y float64) *TransformBuilder { b.originY = y; return b }

// SetCustom appends a caller-supplied matrix after the skews.
func (b *TransformBuilder) SetCustom(m Transform2D) *TransformBuilder {
	b.custom = m
	b.hasCustom = true
	return b
}

// Build returns the transform for rect. Points are moved so the pivot sits
// at the origin, then translated, rotated, scaled, skewed on X, skewed on Y,
// passed through the custom matrix, and finally moved back by the pivot.
func (b *TransformBuilder) Build(rect Rect) Transform2D {
	pivotX := rect.X + b.originX*rect.Width
	pivotY := rect.Y + b.originY*rect.Height

	m := Translation(-pivotX, -pivotY)
	if b.translateX != 0 || b.translateY != 0 {
		m = m.Then(Translation(b.translateX, b.translateY))
	}
	if b.rotate != 0 {
		m = m.Then(Rotation(b.rotate))
	}
	if b.scaleX != 1 || b.scaleY != 1 {
		m = m.Then(Scaling(b.scaleX, b.scaleY))
	}
	if b.skewX != 0 {
		m = m.Then(SkewingX(b.skewX))
	}
	if b.skewY != 0 {
		m = m.Then(SkewingY(b.skewY))
	}
	if b.hasCustom {
		m = m.Then(b.custom)
	}
	return m.Then(Translation(pivotX, pivotY))
}
