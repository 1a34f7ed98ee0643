package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agiangrant/paper/style"
)

// ErrUnknownClass is returned for utility classes ParseClasses does not know.
var ErrUnknownClass = errors.New("theme: unknown utility class")

// ClassFamily is a style family compiled from a utility class string.
// Members without classes are nil.
type ClassFamily struct {
	Base    *style.Template
	Hovered *style.Template
	Focused *style.Template
	Active  *style.Template
}

// Register stores the family in set under name.
func (f *ClassFamily) Register(set *style.TemplateSet, name string) {
	b := set.Family(name).Base(f.Base)
	if f.Hovered != nil {
		b.Hovered(f.Hovered)
	}
	if f.Focused != nil {
		b.Focused(f.Focused)
	}
	if f.Active != nil {
		b.Active(f.Active)
	}
	b.Register()
}

// RegisterClasses parses classes and registers the family under name.
func RegisterClasses(set *style.TemplateSet, name, classes string) error {
	f, err := ParseClasses(classes)
	if err != nil {
		return fmt.Errorf("classes for %q: %w", name, err)
	}
	f.Register(set, name)
	return nil
}

const (
	variantBase = iota
	variantHover
	variantFocus
	variantActive
)

var transitionScopes = map[string]style.PropertySet{
	"transition-colors":    setOf(style.BackgroundColor, style.BorderColor, style.TextColor),
	"transition-transform": setOf(style.TranslateX, style.TranslateY, style.ScaleX, style.ScaleY, style.Rotate, style.SkewX, style.SkewY),
	"transition-size":      setOf(style.Width, style.Height),
}

var easingClasses = map[string]string{
	"ease-linear": "linear",
	"ease-in":     "ease-in",
	"ease-out":    "ease-out",
	"ease-in-out": "ease-in-out",
}

func setOf(ps ...style.Property) style.PropertySet {
	var s style.PropertySet
	for _, p := range ps {
		s.Add(p)
	}
	return s
}

// ParseClasses compiles a utility class string into a style family.
// Example: "bg-[#2b6cb0] hover:bg-[#2c5282] rounded w-32 transition-colors duration-200 ease-out"
//
// State variants (hover:, focus:, active:) select the family member.
// Transition utilities (transition, transition-colors, duration-*, ease-*)
// declare transitions on the base template for the properties any member sets.
func ParseClasses(classes string) (*ClassFamily, error) {
	var (
		members  [4]*style.Template
		touched  style.PropertySet
		scope    style.PropertySet
		all      bool
		duration = 0.15
		easing   = "ease"
	)

	for _, class := range strings.Fields(classes) {
		variant, base, err := splitVariant(class)
		if err != nil {
			return nil, err
		}

		switch {
		case base == "transition" || base == "transition-all":
			all = true
			continue
		case base == "transition-none":
			all, scope = false, 0
			continue
		case strings.HasPrefix(base, "duration-"):
			d, err := parseDuration(strings.TrimPrefix(base, "duration-"))
			if err != nil {
				return nil, fmt.Errorf("%q: %w", class, err)
			}
			duration = d
			continue
		}
		if s, ok := transitionScopes[base]; ok {
			scope |= s
			continue
		}
		if e, ok := easingClasses[base]; ok {
			easing = e
			continue
		}

		assigns, err := parseUtility(base)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", class, err)
		}
		if members[variant] == nil {
			members[variant] = style.NewTemplate()
		}
		for _, a := range assigns {
			members[variant].Set(a.p, a.v)
			touched.Add(a.p)
		}
	}

	if all {
		scope = touched
	}
	if animated := scope & touched; animated != 0 {
		if members[variantBase] == nil {
			members[variantBase] = style.NewTemplate()
		}
		fn := style.EasingByName(easing)
		for p := range animated.All() {
			members[variantBase].Transition(p, duration, fn)
		}
	}

	for _, m := range members {
		if m != nil && m.Err() != nil {
			return nil, m.Err()
		}
	}
	return &ClassFamily{
		Base:    members[variantBase],
		Hovered: members[variantHover],
		Focused: members[variantFocus],
		Active:  members[variantActive],
	}, nil
}

// splitVariant separates "hover:bg-white" into its variant and utility.
func splitVariant(class string) (int, string, error) {
	prefix, base, found := strings.Cut(class, ":")
	if !found {
		return variantBase, class, nil
	}
	switch prefix {
	case "hover":
		return variantHover, base, nil
	case "focus":
		return variantFocus, base, nil
	case "active":
		return variantActive, base, nil
	default:
		return 0, "", fmt.Errorf("%w: variant %q in %q", ErrUnknownClass, prefix, class)
	}
}

type assignment struct {
	p style.Property
	v style.Value
}

// utilities maps a class prefix to the properties it sets. Longer prefixes
// come first so "min-w" wins over "w".
var utilities = []struct {
	prefix string
	parse  func(arg string, arbitrary bool) ([]assignment, error)
}{
	{"translate-x", offset(style.TranslateX)},
	{"translate-y", offset(style.TranslateY)},
	{"skew-x", degrees(style.SkewX)},
	{"skew-y", degrees(style.SkewY)},
	{"scale-x", scale(style.ScaleX)},
	{"scale-y", scale(style.ScaleY)},
	{"scale", scale(style.ScaleX, style.ScaleY)},
	{"rotate", degrees(style.Rotate)},
	{"rounded", rounded},
	{"origin", origin},
	{"min-w", length(style.MinWidth)},
	{"max-w", length(style.MaxWidth)},
	{"min-h", length(style.MinHeight)},
	{"max-h", length(style.MaxHeight)},
	{"gap", length(style.RowBetween, style.ColBetween)},
	{"top", length(style.Top)},
	{"right", length(style.Right)},
	{"bottom", length(style.Bottom)},
	{"left", length(style.Left)},
	{"px", length(style.ChildLeft, style.ChildRight)},
	{"py", length(style.ChildTop, style.ChildBottom)},
	{"pt", length(style.ChildTop)},
	{"pr", length(style.ChildRight)},
	{"pb", length(style.ChildBottom)},
	{"pl", length(style.ChildLeft)},
	{"p", length(style.ChildLeft, style.ChildRight, style.ChildTop, style.ChildBottom)},
	{"w", length(style.Width)},
	{"h", length(style.Height)},
	{"bg", colorOnly(style.BackgroundColor)},
	{"text", text},
	{"border", border},
	{"shadow", shadow},
}

func parseUtility(class string) ([]assignment, error) {
	negative := strings.HasPrefix(class, "-")
	class = strings.TrimPrefix(class, "-")

	for _, u := range utilities {
		var arg string
		switch {
		case class == u.prefix:
		case strings.HasPrefix(class, u.prefix+"-"):
			arg = class[len(u.prefix)+1:]
		default:
			continue
		}

		arbitrary := strings.HasPrefix(arg, "[") && strings.HasSuffix(arg, "]")
		if arbitrary {
			arg = strings.ReplaceAll(arg[1:len(arg)-1], "_", " ")
		}
		assigns, err := u.parse(arg, arbitrary)
		if err != nil {
			return nil, err
		}
		if negative {
			for i, a := range assigns {
				if a.v.Kind() != style.KindFloat && a.v.Kind() != style.KindUnit {
					return nil, fmt.Errorf("%w: %q cannot be negative", ErrUnknownClass, u.prefix)
				}
				assigns[i].v = negate(a.v)
			}
		}
		return assigns, nil
	}
	return nil, ErrUnknownClass
}

func negate(v style.Value) style.Value {
	if v.Kind() == style.KindUnit {
		u := v.Unit()
		u.Value = -u.Value
		return style.FromUnit(u)
	}
	return style.FromFloat(-v.Float())
}

func each(v style.Value, ps ...style.Property) []assignment {
	out := make([]assignment, len(ps))
	for i, p := range ps {
		out[i] = assignment{p: p, v: v}
	}
	return out
}

// spacing converts a spacing-scale step to pixels (one step is 4px).
func spacing(arg string) (float64, error) {
	if arg == "px" {
		return 1, nil
	}
	f, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: spacing %q", ErrUnknownClass, arg)
	}
	return f * 4, nil
}

func length(ps ...style.Property) func(string, bool) ([]assignment, error) {
	return func(arg string, arbitrary bool) ([]assignment, error) {
		var u style.UnitValue
		switch {
		case arbitrary:
			var err error
			if u, err = decodeUnit(arg); err != nil {
				return nil, err
			}
		case arg == "full":
			u = style.Percent(100)
		case arg == "auto":
			u = style.Auto
		case arg == "stretch":
			u = style.Stretch(1)
		default:
			px, err := spacing(arg)
			if err != nil {
				return nil, err
			}
			u = style.Pixels(px)
		}
		return each(style.FromUnit(u), ps...), nil
	}
}

func offset(p style.Property) func(string, bool) ([]assignment, error) {
	return func(arg string, arbitrary bool) ([]assignment, error) {
		if arbitrary {
			f, err := strconv.ParseFloat(strings.TrimSuffix(arg, "px"), 64)
			if err != nil {
				return nil, fmt.Errorf("offset %q: %w", arg, err)
			}
			return each(style.FromFloat(f), p), nil
		}
		px, err := spacing(arg)
		if err != nil {
			return nil, err
		}
		return each(style.FromFloat(px), p), nil
	}
}

func degrees(p style.Property) func(string, bool) ([]assignment, error) {
	return func(arg string, _ bool) ([]assignment, error) {
		f, err := strconv.ParseFloat(strings.TrimSuffix(arg, "deg"), 64)
		if err != nil {
			return nil, fmt.Errorf("angle %q: %w", arg, err)
		}
		return each(style.FromFloat(f), p), nil
	}
}

// scale reads "scale-95" as 0.95 and "scale-[1.5]" as 1.5.
func scale(ps ...style.Property) func(string, bool) ([]assignment, error) {
	return func(arg string, arbitrary bool) ([]assignment, error) {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("scale %q: %w", arg, err)
		}
		if !arbitrary {
			f /= 100
		}
		return each(style.FromFloat(f), ps...), nil
	}
}

var radii = map[string]float64{
	"none": 0,
	"sm":   2,
	"":     4,
	"md":   6,
	"lg":   8,
	"xl":   12,
	"2xl":  16,
	"3xl":  24,
	"full": 9999,
}

func rounded(arg string, arbitrary bool) ([]assignment, error) {
	r, ok := radii[arg]
	if arbitrary {
		f, err := strconv.ParseFloat(strings.TrimSuffix(arg, "px"), 64)
		if err != nil {
			return nil, fmt.Errorf("radius %q: %w", arg, err)
		}
		r, ok = f, true
	}
	if !ok {
		return nil, fmt.Errorf("%w: rounded-%s", ErrUnknownClass, arg)
	}
	return each(style.FromVector4(style.Vector4{X: r, Y: r, Z: r, W: r}), style.Rounded), nil
}

var origins = map[string][2]float64{
	"center":       {0.5, 0.5},
	"top":          {0.5, 0},
	"bottom":       {0.5, 1},
	"left":         {0, 0.5},
	"right":        {1, 0.5},
	"top-left":     {0, 0},
	"top-right":    {1, 0},
	"bottom-left":  {0, 1},
	"bottom-right": {1, 1},
}

func origin(arg string, _ bool) ([]assignment, error) {
	o, ok := origins[arg]
	if !ok {
		return nil, fmt.Errorf("%w: origin-%s", ErrUnknownClass, arg)
	}
	return []assignment{
		{p: style.OriginX, v: style.FromFloat(o[0])},
		{p: style.OriginY, v: style.FromFloat(o[1])},
	}, nil
}

func colorOnly(p style.Property) func(string, bool) ([]assignment, error) {
	return func(arg string, _ bool) ([]assignment, error) {
		c, err := decodeColor(arg)
		if err != nil {
			return nil, err
		}
		return each(style.FromColor(c), p), nil
	}
}

var fontSizes = map[string]float64{
	"xs":   12,
	"sm":   14,
	"base": 16,
	"lg":   18,
	"xl":   20,
	"2xl":  24,
	"3xl":  30,
	"4xl":  36,
	"5xl":  48,
	"6xl":  60,
}

// text sets the text color, or the font size for "text-lg" and "text-[22px]".
func text(arg string, arbitrary bool) ([]assignment, error) {
	if size, ok := fontSizes[arg]; ok && !arbitrary {
		return each(style.FromFloat(size), style.FontSize), nil
	}
	if arbitrary && !strings.HasPrefix(arg, "#") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(arg, "px"), 64)
		if err != nil {
			return nil, fmt.Errorf("font size %q: %w", arg, err)
		}
		return each(style.FromFloat(f), style.FontSize), nil
	}
	return colorOnly(style.TextColor)(arg, arbitrary)
}

// border sets the width for "border", "border-2" and "border-[3px]", and
// the color otherwise.
func border(arg string, arbitrary bool) ([]assignment, error) {
	if arg == "" {
		return each(style.FromFloat(1), style.BorderWidth), nil
	}
	if strings.HasPrefix(arg, "#") {
		return colorOnly(style.BorderColor)(arg, arbitrary)
	}
	if f, err := strconv.ParseFloat(strings.TrimSuffix(arg, "px"), 64); err == nil {
		return each(style.FromFloat(f), style.BorderWidth), nil
	}
	return colorOnly(style.BorderColor)(arg, arbitrary)
}

var shadows = map[string]style.BoxShadow{
	"none": style.NoShadow,
	"sm":   {OffsetY: 1, Blur: 2, Color: style.RGBA8(0, 0, 0, 13)},
	"":     {OffsetY: 1, Blur: 3, Color: style.RGBA8(0, 0, 0, 26)},
	"md":   {OffsetY: 4, Blur: 6, Spread: -1, Color: style.RGBA8(0, 0, 0, 26)},
	"lg":   {OffsetY: 10, Blur: 15, Spread: -3, Color: style.RGBA8(0, 0, 0, 26)},
	"xl":   {OffsetY: 20, Blur: 25, Spread: -5, Color: style.RGBA8(0, 0, 0, 26)},
}

func shadow(arg string, arbitrary bool) ([]assignment, error) {
	s, ok := shadows[arg]
	if !ok || arbitrary {
		return nil, fmt.Errorf("%w: shadow-%s", ErrUnknownClass, arg)
	}
	return each(style.FromShadow(s), style.Shadow), nil
}

// parseDuration reads "200" as milliseconds and "[0.3s]" or "[300ms]" as written.
func parseDuration(arg string) (float64, error) {
	if strings.HasPrefix(arg, "[") && strings.HasSuffix(arg, "]") {
		arg = arg[1 : len(arg)-1]
		if ms, ok := strings.CutSuffix(arg, "ms"); ok {
			f, err := strconv.ParseFloat(ms, 64)
			return f / 1000, err
		}
		return strconv.ParseFloat(strings.TrimSuffix(arg, "s"), 64)
	}
	ms, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: duration-%s", ErrUnknownClass, arg)
	}
	return ms / 1000, nil
}
