package style

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Target receives property assignments. *Style applies them to an element;
// *Template records them.
type Target interface {
	SetNextValue(p Property, v Value) error
	SetDirectValue(p Property, v Value) error
	SetTransitionConfig(p Property, duration float64, easing EasingFunc) error
}

var (
	_ Target = (*Style)(nil)
	_ Target = (*Template)(nil)
)

// Assignment is one recorded template entry. A non-nil Transition records a
// transition request for Property; otherwise Value is assigned, directly
// when Direct is set.
type Assignment struct {
	Property   Property
	Value      Value
	Direct     bool
	Transition *Transition
}

// Template is an ordered list of assignments. Applying it is the same as
// issuing each assignment against the target in order, so later entries for
// a property override earlier ones.
//
// Setter errors are kept: the first one is returned by Err and ApplyTo.
type Template struct {
	entries []Assignment
	err     error
}

// NewTemplate returns an empty template.
func NewTemplate() *Template {
	return &Template{}
}

// Assignments returns the recorded entries in order.
func (t *Template) Assignments() []Assignment { return t.entries }

// Len returns the number of recorded entries.
func (t *Template) Len() int { return len(t.entries) }

// Err returns the first error recorded by a setter.
func (t *Template) Err() error { return t.err }

func (t *Template) fail(err error) *Template {
	if t.err == nil {
		t.err = err
	}
	return t
}

// SetNextValue records a transitionable assignment.
func (t *Template) SetNextValue(p Property, v Value) error {
	if err := p.check(v); err != nil {
		return err
	}
	t.entries = append(t.entries, Assignment{Property: p, Value: v})
	return nil
}

// SetDirectValue records an assignment that bypasses transitions.
func (t *Template) SetDirectValue(p Property, v Value) error {
	if err := p.check(v); err != nil {
		return err
	}
	t.entries = append(t.entries, Assignment{Property: p, Value: v, Direct: true})
	return nil
}

// SetTransitionConfig records a transition request.
func (t *Template) SetTransitionConfig(p Property, duration float64, easing EasingFunc) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownProperty, uint8(p))
	}
	if duration < 0 || math.IsNaN(duration) {
		return fmt.Errorf("%w: %g for %s", ErrInvalidDuration, duration, p)
	}
	t.entries = append(t.entries, Assignment{
		Property:   p,
		Transition: &Transition{Duration: duration, Easing: easing},
	})
	return nil
}

// Set records p = v.
func (t *Template) Set(p Property, v Value) *Template {
	if err := t.SetNextValue(p, v); err != nil {
		return t.fail(err)
	}
	return t
}

// SetDirect records p = v without transition.
func (t *Template) SetDirect(p Property, v Value) *Template {
	if err := t.SetDirectValue(p, v); err != nil {
		return t.fail(err)
	}
	return t
}

// Transition records a transition request for p.
func (t *Template) Transition(p Property, duration float64, easing EasingFunc) *Template {
	if err := t.SetTransitionConfig(p, duration, easing); err != nil {
		return t.fail(err)
	}
	return t
}

func (t *Template) BackgroundColor(c Color) *Template { return t.Set(BackgroundColor, FromColor(c)) }
func (t *Template) BorderColor(c Color) *Template     { return t.Set(BorderColor, FromColor(c)) }
func (t *Template) TextColor(c Color) *Template       { return t.Set(TextColor, FromColor(c)) }
func (t *Template) BorderWidth(w float64) *Template   { return t.Set(BorderWidth, FromFloat(w)) }
func (t *Template) Width(u UnitValue) *Template       { return t.Set(Width, FromUnit(u)) }
func (t *Template) Height(u UnitValue) *Template      { return t.Set(Height, FromUnit(u)) }
func (t *Template) FontSize(size float64) *Template   { return t.Set(FontSize, FromFloat(size)) }
func (t *Template) Scale(s float64) *Template {
	return t.Set(ScaleX, FromFloat(s)).Set(ScaleY, FromFloat(s))
}

// Rounded sets the corner radii: top-left, top-right, bottom-right, bottom-left.
func (t *Template) Rounded(tl, tr, br, bl float64) *Template {
	return t.Set(Rounded, FromVector4(Vector4{X: tl, Y: tr, Z: br, W: bl}))
}

// Shadow sets the box shadow.
func (t *Template) Shadow(s BoxShadow) *Template { return t.Set(Shadow, FromShadow(s)) }

// Translate sets both translation offsets.
func (t *Template) Translate(x, y float64) *Template {
	return t.Set(TranslateX, FromFloat(x)).Set(TranslateY, FromFloat(y))
}

// Rotate sets the rotation in degrees.
func (t *Template) Rotate(degrees float64) *Template { return t.Set(Rotate, FromFloat(degrees)) }

// ApplyTo replays the template against target in recorded order.
// It stops at the first failing assignment.
func (t *Template) ApplyTo(target Target) error {
	if t.err != nil {
		return t.err
	}
	for _, a := range t.entries {
		var err error
		switch {
		case a.Transition != nil:
			err = target.SetTransitionConfig(a.Property, a.Transition.Duration, a.Transition.Easing)
		case a.Direct:
			err = target.SetDirectValue(a.Property, a.Value)
		default:
			err = target.SetNextValue(a.Property, a.Value)
		}
		if err != nil {
			return fmt.Errorf("apply %s: %w", a.Property, err)
		}
	}
	return nil
}

// ============================================================================
// Named templates
// ============================================================================

// Interaction-state suffixes used by style families.
const (
	StateNormal  = "normal"
	StateHovered = "hovered"
	StateFocused = "focused"
	StateActive  = "active"
)

// Interaction carries the interaction predicates of one element.
type Interaction struct {
	Hovered bool
	Focused bool
	Active  bool
}

// StateName composes a family member name such as "button:hovered".
func StateName(base, state string) string { return base + ":" + state }

// TemplateSet is a registry of named templates. It is safe for concurrent
// use; registered templates should not be mutated afterwards.
type TemplateSet struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateSet returns an empty set.
func NewTemplateSet() *TemplateSet {
	return &TemplateSet{templates: make(map[string]*Template)}
}

// Define creates and registers a template named name. The entries of each
// parent are copied in argument order before any the caller adds.
// An unregistered parent fails with ErrStyleNotFound and registers nothing.
func (ts *TemplateSet) Define(name string, parents ...string) (*Template, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	t := NewTemplate()
	for _, parent := range parents {
		pt, ok := ts.templates[parent]
		if !ok {
			return nil, fmt.Errorf("%w: %q (parent of %q)", ErrStyleNotFound, parent, name)
		}
		if err := pt.ApplyTo(t); err != nil {
			return nil, fmt.Errorf("define %q: %w", name, err)
		}
	}
	ts.templates[name] = t
	return t, nil
}

// Register stores t under name, replacing any previous template.
func (ts *TemplateSet) Register(name string, t *Template) {
	ts.mu.Lock()
	ts.templates[name] = t
	ts.mu.Unlock()
}

// Lookup returns the template registered under name.
func (ts *TemplateSet) Lookup(name string) (*Template, bool) {
	ts.mu.RLock()
	t, ok := ts.templates[name]
	ts.mu.RUnlock()
	return t, ok
}

// Find is Lookup returning ErrStyleNotFound for a missing name.
func (ts *TemplateSet) Find(name string) (*Template, error) {
	t, ok := ts.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return t, nil
}

// Names returns the registered names in sorted order.
func (ts *TemplateSet) Names() []string {
	ts.mu.RLock()
	names := make([]string, 0, len(ts.templates))
	for name := range ts.templates {
		names = append(names, name)
	}
	ts.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of registered templates.
func (ts *TemplateSet) Len() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.templates)
}

// Apply applies the template named name to target.
func (ts *TemplateSet) Apply(target Target, name string) error {
	t, err := ts.Find(name)
	if err != nil {
		return err
	}
	return t.ApplyTo(target)
}

// ApplyWithStates applies base, then base:hovered, base:focused and
// base:active in that order for each state in is that holds and has a
// registered template. A missing base template is not an error.
func (ts *TemplateSet) ApplyWithStates(target Target, base string, is Interaction) error {
	if t, ok := ts.Lookup(base); ok {
		if err := t.ApplyTo(target); err != nil {
			return err
		}
	}
	overlays := [...]struct {
		state string
		on    bool
	}{
		{StateHovered, is.Hovered},
		{StateFocused, is.Focused},
		{StateActive, is.Active},
	}
	for _, o := range overlays {
		if !o.on {
			continue
		}
		if t, ok := ts.Lookup(StateName(base, o.state)); ok {
			if err := t.ApplyTo(target); err != nil {
				return err
			}
		}
	}
	return nil
}

// Family starts a style family rooted at base.
func (ts *TemplateSet) Family(base string) *FamilyBuilder {
	return &FamilyBuilder{set: ts, base: base}
}

// FamilyBuilder collects a base template and its interaction-state overlays.
type FamilyBuilder struct {
	set     *TemplateSet
	base    string
	members [5]*Template // base, normal, hovered, focused, active
}

func (f *FamilyBuilder) Base(t *Template) *FamilyBuilder    { f.members[0] = t; return f }
func (f *FamilyBuilder) Normal(t *Template) *FamilyBuilder  { f.members[1] = t; return f }
func (f *FamilyBuilder) Hovered(t *Template) *FamilyBuilder { f.members[2] = t; return f }
func (f *FamilyBuilder) Focused(t *Template) *FamilyBuilder { f.members[3] = t; return f }
func (f *FamilyBuilder) Active(t *Template) *FamilyBuilder  { f.members[4] = t; return f }

// Register stores every member that was provided. The base template is
// registered as an empty template when none was given.
func (f *FamilyBuilder) Register() {
	base := f.members[0]
	if base == nil {
		base = NewTemplate()
	}
	f.set.Register(f.base, base)
	for i, state := range [...]string{StateNormal, StateHovered, StateFocused, StateActive} {
		if t := f.members[i+1]; t != nil {
			f.set.Register(StateName(f.base, state), t)
		}
	}
}
