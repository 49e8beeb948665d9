package design

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a priced, immutable snapshot of a finished design.
type CartItem struct {
	ID          string      `json:"id" bson:"id"`
	Product     ProductKind `json:"product" bson:"product"`
	BaseColor   string      `json:"base_color" bson:"base_color"`
	Decorations []Element   `json:"items" bson:"items"`
	Price       int64       `json:"price" bson:"price"`
	CreatedAt   time.Time   `json:"timestamp" bson:"timestamp"`
}

// Clone returns a deep copy so holders never share decoration storage.
func (c CartItem) Clone() CartItem {
	c.Decorations = cloneElements(c.Decorations)
	return c
}

// Session is the working customization: product kind, base color and the
// decoration surface.
type Session struct {
	product ProductKind
	color   string
	surface *Surface
	nowFunc func() time.Time
	newID   func() string
}

type SessionOption func(*Session)

// WithClock overrides the timestamp source used by Finalize.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.nowFunc = now }
}

// WithIDGenerator overrides the cart item id source used by Finalize.
func WithIDGenerator(gen func() string) SessionOption {
	return func(s *Session) { s.newID = gen }
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		product: Shirt,
		color:   DefaultColor,
		surface: NewSurface(),
		nowFunc: time.Now,
		newID:   newCartItemID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectProduct switches the product and always clears the decorations,
// even when the same kind is selected again.
func (s *Session) SelectProduct(kind ProductKind) {
	s.product = kind
	s.surface.ClearAll()
}

func (s *Session) SelectColor(hex string) {
	s.color = hex
}

func (s *Session) Product() ProductKind { return s.product }
func (s *Session) Color() string        { return s.color }
func (s *Session) Surface() *Surface    { return s.surface }

func (s *Session) BasePrice() int64 {
	return PriceFor(s.product)
}

// Finalize snapshots the design into a CartItem. The session is left as is.
func (s *Session) Finalize() CartItem {
	return CartItem{
		ID:          s.newID(),
		Product:     s.product,
		BaseColor:   s.color,
		Decorations: s.surface.Elements(),
		Price:       s.BasePrice(),
		CreatedAt:   s.nowFunc(),
	}
}

// Reset restores the defaults and drops every decoration.
func (s *Session) Reset() {
	s.product = Shirt
	s.color = DefaultColor
	s.surface.ClearAll()
}

// newCartItemID returns a time-ordered id, unique within the process.
func newCartItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
