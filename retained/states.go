package retained

import (
	"slices"

	"github.com/agiangrant/paper/style"
)

// States tracks which elements are hovered, focused and pressed.
//
// Hover and press are chains from the outermost element to the deepest
// one under the pointer, so a parent stays hovered while the pointer moves
// onto its child. At most one element has focus.
type States struct {
	hovered []uint64
	pressed []uint64
	focused uint64
	focus   bool
}

// NewStates returns a tracker with nothing hovered, pressed or focused.
func NewStates() *States {
	return &States{}
}

// SetHoverChain replaces the hover chain.
func (s *States) SetHoverChain(ids ...uint64) {
	s.hovered = append(s.hovered[:0], ids...)
}

// SetPressChain replaces the press chain. An empty call releases the press.
func (s *States) SetPressChain(ids ...uint64) {
	s.pressed = append(s.pressed[:0], ids...)
}

// Focus gives keyboard focus to id.
func (s *States) Focus(id uint64) {
	s.focused, s.focus = id, true
}

// Blur removes keyboard focus.
func (s *States) Blur() {
	s.focused, s.focus = 0, false
}

// Focused returns the focused element.
func (s *States) Focused() (uint64, bool) { return s.focused, s.focus }

func (s *States) IsHovered(id uint64) bool { return slices.Contains(s.hovered, id) }
func (s *States) IsActive(id uint64) bool  { return slices.Contains(s.pressed, id) }
func (s *States) IsFocused(id uint64) bool { return s.focus && s.focused == id }

// Interaction returns the predicates for id.
func (s *States) Interaction(id uint64) style.Interaction {
	return style.Interaction{
		Hovered: s.IsHovered(id),
		Focused: s.IsFocused(id),
		Active:  s.IsActive(id),
	}
}

// Prune forgets elements that were not declared this frame.
func (s *States) Prune(live LiveSet) {
	s.hovered = slices.DeleteFunc(s.hovered, func(id uint64) bool { return !live.Has(id) })
	s.pressed = slices.DeleteFunc(s.pressed, func(id uint64) bool { return !live.Has(id) })
	if s.focus && !live.Has(s.focused) {
		s.Blur()
	}
}
