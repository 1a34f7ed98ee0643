package style

// Interpolate blends a toward b by t in [0, 1].
//
// Continuous payloads are blended component-wise. Payloads without a
// meaningful midpoint (different units, auto or stretch lengths, different
// gradient shapes) switch from a to b at t = 0.5. Values of different kinds yield b.
func Interpolate(a, b Value, t float64) Value {
	if a.kind != b.kind {
		return b
	}
	switch a.kind {
	case KindFloat:
		return FromFloat(lerp(a.Float(), b.Float(), t))
	case KindInt:
		from, to := a.Int(), b.Int()
		return FromInt(from + int32((float64(to)-float64(from))*t))
	case KindColor:
		return FromColor(lerpColor(a.Color(), b.Color(), t))
	case KindVector4, KindTransform:
		out := a
		for i := range out.f {
			out.f[i] = lerp(a.f[i], b.f[i], t)
		}
		return out
	case KindUnit:
		if a.tag != b.tag || Unit(a.tag) == UnitAuto || Unit(a.tag) == UnitStretch {
			return step(a, b, t)
		}
		return FromUnit(UnitValue{Unit: Unit(a.tag), Value: lerp(a.f[0], b.f[0], t)})
	case KindGradient:
		if a.tag != b.tag {
			return step(a, b, t)
		}
		return lerpPayload(a, b, t)
	case KindBoxShadow:
		return lerpPayload(a, b, t)
	}
	return b
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpColor interpolates each ARGB channel, truncating toward zero.
func lerpColor(from, to Color, t float64) Color {
	ch := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return RGBA8(
		ch(from.R(), to.R()),
		ch(from.G(), to.G()),
		ch(from.B(), to.B()),
		ch(from.A(), to.A()),
	)
}

func lerpPayload(a, b Value, t float64) Value {
	out := a
	for i := range out.f {
		out.f[i] = lerp(a.f[i], b.f[i], t)
	}
	for i := range out.c {
		out.c[i] = lerpColor(a.c[i], b.c[i], t)
	}
	return out
}

func step(a, b Value, t float64) Value {
	if t < 0.5 {
		return a
	}
	return b
}
