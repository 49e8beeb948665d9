package design

import (
	"github.com/google/uuid"
)

// ElementKind distinguishes glyph stickers from free text.
type ElementKind string

const (
	KindSticker ElementKind = "sticker"
	KindText    ElementKind = "text"
)

// New elements are placed here before the user drags them.
const (
	DefaultX     = 200.0
	DefaultY     = 200.0
	DefaultScale = 1.0
)

// Element is one decoration placed on the product. Coordinates are
// canvas-local and deliberately unbounded.
type Element struct {
	ID      string      `json:"id" bson:"id"`
	Kind    ElementKind `json:"type" bson:"type"`
	Content string      `json:"content" bson:"content"`
	X       float64     `json:"x" bson:"x"`
	Y       float64     `json:"y" bson:"y"`
	Scale   float64     `json:"scale" bson:"scale"`
}

// Snapshot is a consistent copy of a surface for rendering.
type Snapshot struct {
	Version  uint64    `json:"version"`
	Elements []Element `json:"elements"`
	ActiveID string    `json:"active_id,omitempty"`
}

// Surface owns the placed elements of one in-progress design and the
// pointer-drag target. Insertion order is z-order. Surface is not safe for
// concurrent use; its owner serializes access.
type Surface struct {
	elements []Element
	activeID string
	dragging bool
	version  uint64
	newID    func() string
}

func NewSurface() *Surface {
	return &Surface{newID: uuid.NewString}
}

// AddElement appends a new element at the default position and returns it.
func (s *Surface) AddElement(kind ElementKind, content string) Element {
	el := Element{
		ID:      s.newID(),
		Kind:    kind,
		Content: content,
		X:       DefaultX,
		Y:       DefaultY,
		Scale:   DefaultScale,
	}
	s.elements = append(s.elements, el)
	s.version++
	return el
}

// BeginDrag makes id the single active drag target, replacing any previous
// target. It reports false and leaves the drag state alone if id is unknown.
func (s *Surface) BeginDrag(id string) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.activeID = id
	s.dragging = true
	return true
}

// UpdateDragPosition moves the active element to (x, y). It is a no-op when
// no drag is active, and repeated calls with the same input change nothing.
func (s *Surface) UpdateDragPosition(x, y float64) {
	if !s.dragging {
		return
	}
	i := s.indexOf(s.activeID)
	if i < 0 {
		s.EndDrag()
		return
	}
	el := &s.elements[i]
	if el.X == x && el.Y == y {
		return
	}
	el.X, el.Y = x, y
	s.version++
}

func (s *Surface) EndDrag() {
	s.activeID = ""
	s.dragging = false
}

// ActiveDrag returns the element currently being dragged, if any.
func (s *Surface) ActiveDrag() (string, bool) {
	return s.activeID, s.dragging
}

// RemoveElement deletes a single element. Removing the drag target ends the drag.
func (s *Surface) RemoveElement(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.elements = append(s.elements[:i], s.elements[i+1:]...)
	if s.dragging && s.activeID == id {
		s.EndDrag()
	}
	s.version++
	return true
}

func (s *Surface) ClearAll() {
	s.elements = nil
	s.EndDrag()
	s.version++
}

func (s *Surface) Len() int {
	return len(s.elements)
}

func (s *Surface) Version() uint64 {
	return s.version
}

// Element returns a copy of the element with the given id.
func (s *Surface) Element(id string) (Element, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Element{}, false
	}
	return s.elements[i], true
}

// Elements returns a copy of the elements in z-order.
func (s *Surface) Elements() []Element {
	return cloneElements(s.elements)
}

func (s *Surface) Snapshot() Snapshot {
	return Snapshot{
		Version:  s.version,
		Elements: s.Elements(),
		ActiveID: s.activeID,
	}
}

func (s *Surface) indexOf(id string) int {
	for i := range s.elements {
		if s.elements[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneElements(in []Element) []Element {
	out := make([]Element, len(in))
	copy(out, in)
	return out
}
