package retained

import (
	"fmt"

	"github.com/agiangrant/paper/internal/logger"
	"github.com/agiangrant/paper/style"
)

// FrameStats summarizes one EndFrame.
type FrameStats struct {
	Frame     uint64 // frame number, starting at 1
	Elements  int    // elements declared this frame
	Live      int    // styles registered after cleanup
	Reclaimed int    // styles released this frame
}

// Context ties together everything a frame loop needs: the declared element
// tree, the style registry, named templates and interaction state. Each
// Context is independent; there is no package-level state.
//
// A frame is declared between BeginFrame and EndFrame:
//
//	ctx.BeginFrame()
//	ctx.Open(1).Style("panel")
//	ctx.Open(2).Style("button").Set(style.Width, style.FromUnit(style.Pixels(120)))
//	ctx.Close()
//	ctx.Close()
//	stats, err := ctx.EndFrame(dt)
type Context struct {
	registry  *Registry
	frame     *Frame
	templates *style.TemplateSet
	states    *States
	log       *logger.Logger

	frameNo uint64
	err     error
}

// NewContext creates a Context using templates for named styles. A nil set
// starts empty. Options configure the underlying Registry.
func NewContext(templates *style.TemplateSet, opts ...Option) (*Context, error) {
	reg, err := NewRegistry(opts...)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = style.NewTemplateSet()
	}
	return &Context{
		registry:  reg,
		frame:     NewFrame(),
		templates: templates,
		states:    NewStates(),
		log:       reg.log,
	}, nil
}

func (c *Context) Registry() *Registry           { return c.registry }
func (c *Context) Templates() *style.TemplateSet { return c.templates }
func (c *Context) States() *States               { return c.states }
func (c *Context) Frame() *Frame                 { return c.frame }

// BeginFrame starts declaring a new frame.
func (c *Context) BeginFrame() {
	c.frame.Reset()
	c.err = nil
}

// Open declares element id inside the innermost open element.
func (c *Context) Open(id uint64) ElementBuilder {
	if _, err := c.frame.Open(id); err != nil {
		c.fail(err)
		return ElementBuilder{ctx: c, id: id, sink: style.NewTemplate()}
	}
	return ElementBuilder{ctx: c, id: id}
}

// Close ends the innermost open element.
func (c *Context) Close() {
	if err := c.frame.Close(); err != nil {
		c.fail(err)
	}
}

// EndFrame resolves every declared element's style for this frame, advances
// animations by dt seconds and reclaims the styles of elements that were
// not declared. It returns the first error recorded while declaring.
func (c *Context) EndFrame(dt float64) (FrameStats, error) {
	if depth := c.frame.Depth(); depth > 0 {
		c.fail(fmt.Errorf("%w: %d elements still open", ErrUnbalanced, depth))
	}
	c.frameNo++

	for _, root := range c.frame.Roots() {
		c.registry.UpdateAll(dt, c.frame, root)
	}
	live := c.frame.Live()
	c.states.Prune(live)
	reclaimed := c.registry.EndOfFrameCleanup(live)

	stats := FrameStats{
		Frame:     c.frameNo,
		Elements:  c.frame.Len(),
		Live:      c.registry.Len(),
		Reclaimed: reclaimed,
	}
	err := c.err
	c.err = nil
	if err != nil {
		c.log.Error(err, "frame declared with errors", "frame", c.frameNo)
	}
	return stats, err
}

// Value returns the value in effect for p on element id.
func (c *Context) Value(id uint64, p style.Property) (style.Value, bool) {
	return c.registry.Value(id, p)
}

// Transform returns the composed transform of element id laid out at rect.
func (c *Context) Transform(id uint64, rect style.Rect) (style.Transform2D, bool) {
	s, ok := c.registry.Style(id)
	if !ok {
		return style.Identity, false
	}
	return s.Transform(rect), true
}

func (c *Context) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// ElementBuilder assigns style to one declared element. Errors are recorded
// on the Context and returned by EndFrame.
//
// A builder for an element that failed to open writes to sink, so its
// assignments are validated but never reach a style.
type ElementBuilder struct {
	ctx  *Context
	id   uint64
	sink *style.Template
}

// ID returns the element identity.
func (b ElementBuilder) ID() uint64 { return b.id }

func (b ElementBuilder) target() style.Target {
	if b.sink != nil {
		return b.sink
	}
	return b.ctx.registry.Target(b.id)
}

func (b ElementBuilder) check(err error) ElementBuilder {
	if err != nil {
		b.ctx.fail(fmt.Errorf("element %d: %w", b.id, err))
	}
	return b
}

// Set requests p = v this frame, animated if a transition is declared.
func (b ElementBuilder) Set(p style.Property, v style.Value) ElementBuilder {
	return b.check(b.target().SetNextValue(p, v))
}

// SetDirect applies p = v immediately.
func (b ElementBuilder) SetDirect(p style.Property, v style.Value) ElementBuilder {
	return b.check(b.target().SetDirectValue(p, v))
}

// Transition animates this frame's change to p.
func (b ElementBuilder) Transition(p style.Property, duration float64, easing style.EasingFunc) ElementBuilder {
	return b.check(b.target().SetTransitionConfig(p, duration, easing))
}

// Apply replays t on the element.
func (b ElementBuilder) Apply(t *style.Template) ElementBuilder {
	return b.check(t.ApplyTo(b.target()))
}

// Style applies the named template followed by the overlays for the
// element's current interaction state.
func (b ElementBuilder) Style(name string) ElementBuilder {
	return b.check(b.ctx.templates.ApplyWithStates(b.target(), name, b.ctx.states.Interaction(b.id)))
}

func (b ElementBuilder) BackgroundColor(c style.Color) ElementBuilder {
	return b.Set(style.BackgroundColor, style.FromColor(c))
}

func (b ElementBuilder) Width(u style.UnitValue) ElementBuilder {
	return b.Set(style.Width, style.FromUnit(u))
}

func (b ElementBuilder) Height(u style.UnitValue) ElementBuilder {
	return b.Set(style.Height, style.FromUnit(u))
}
