package studio

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/adoreshop/pkg/currency"
	"github.com/example/adoreshop/pkg/design"
	"github.com/example/adoreshop/pkg/order"
	"go.uber.org/zap"
)

const sinkTimeout = 5 * time.Second

// Advisor produces styling advice. It must always return some text.
type Advisor interface {
	Advise(ctx context.Context, username string, product design.ProductKind) string
}

// Deps are shared by every storefront actor of a registry.
type Deps struct {
	Advisor Advisor
	Sink    EventSink
	Logger  *zap.Logger

	// NewSession and NewFlow override how per-client state is built.
	NewSession func() *design.Session
	NewFlow    func() *order.Flow
	Now        func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Sink == nil {
		d.Sink = NopSink{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.NewSession == nil {
		d.NewSession = func() *design.Session { return design.NewSession() }
	}
	if d.NewFlow == nil {
		d.NewFlow = func() *order.Flow { return order.NewFlow() }
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Storefront is the single owner of one client's design session and order
// flow. All state changes happen inside Receive.
type Storefront struct {
	clientID string
	deps     Deps
	logger   *zap.Logger

	design *design.Session
	open   bool
	flow   *order.Flow

	// generation changes whenever the studio opens, closes or asks for new
	// advice. Advice computed for an older generation is dropped.
	generation    uint64
	advice        string
	advicePending bool
}

func NewStorefront(clientID string, deps Deps) *Storefront {
	deps = deps.withDefaults()
	return &Storefront{
		clientID: clientID,
		deps:     deps,
		logger:   deps.Logger.With(zap.String("client_id", clientID)),
		design:   deps.NewSession(),
		flow:     deps.NewFlow(),
	}
}

func (s *Storefront) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		s.logger.Debug("Storefront started")

	case *actor.Stopped:
		s.logger.Debug("Storefront stopped")

	case *adviceResolved:
		s.applyAdvice(msg)

	case *RequestAdvice:
		ctx.Respond(s.requestAdvice(ctx, msg))

	default:
		if reply := s.handle(msg); reply != nil {
			ctx.Respond(reply)
		}
	}
}

func (s *Storefront) handle(msg interface{}) *Reply {
	switch msg := msg.(type) {
	case *OpenStudio:
		if !s.open {
			s.open = true
			s.resetAdvice()
			s.logger.Debug("Studio opened")
		}
		return s.studioReply(nil)

	case *CloseStudio:
		s.closeStudio()
		return s.studioReply(nil)

	case *GetStudio:
		return s.studioReply(nil)

	case *SelectProduct:
		return s.withStudio(func(ds *design.Session) error {
			ds.SelectProduct(msg.Kind)
			return nil
		})

	case *SelectColor:
		return s.withStudio(func(ds *design.Session) error {
			ds.SelectColor(msg.Hex)
			return nil
		})

	case *AddElement:
		return s.withStudio(func(ds *design.Session) error {
			ds.Surface().AddElement(msg.Kind, msg.Content)
			return nil
		})

	case *RemoveElement:
		return s.withStudio(func(ds *design.Session) error {
			if !ds.Surface().RemoveElement(msg.ID) {
				return ErrUnknownElement
			}
			return nil
		})

	case *ClearDesign:
		return s.withStudio(func(ds *design.Session) error {
			ds.Surface().ClearAll()
			return nil
		})

	case *BeginDrag:
		return s.withStudio(func(ds *design.Session) error {
			if !ds.Surface().BeginDrag(msg.ID) {
				return ErrUnknownElement
			}
			return nil
		})

	case *UpdateDrag:
		return s.withStudio(func(ds *design.Session) error {
			ds.Surface().UpdateDragPosition(msg.X, msg.Y)
			return nil
		})

	case *EndDrag:
		return s.withStudio(func(ds *design.Session) error {
			ds.Surface().EndDrag()
			return nil
		})

	case *AddDesignToCart:
		return s.addDesignToCart()

	case *GetOrder:
		return s.orderReply(nil)

	case *OpenCart:
		return s.orderReply(s.flow.OpenCart())

	case *CloseCart:
		return s.orderReply(s.flow.CloseCart())

	case *QuickAdd:
		entry, ok := design.LookupCatalog(msg.EntryID)
		if !ok {
			return s.orderReply(ErrUnknownEntry)
		}
		item := entry.CartItem(s.deps.Now())
		if err := s.flow.AddItem(item); err != nil {
			return s.orderReply(err)
		}
		s.emitItemAdded(item, "catalog")
		return s.orderReply(nil)

	case *RemoveCartItem:
		item, err := s.flow.RemoveItem(msg.ID)
		if err == nil {
			s.emit(EventCartItemRemoved, map[string]interface{}{
				"item_id": item.ID,
				"product": string(item.Product),
				"price":   item.Price,
			})
		}
		return s.orderReply(err)

	case *SubmitCart:
		before := s.flow.Stage()
		err := s.flow.SubmitCart()
		if err == nil && before != s.flow.Stage() {
			s.emit(EventCheckoutStarted, map[string]interface{}{
				"item_count": s.flow.Len(),
				"total":      s.flow.Total(),
			})
		}
		return s.orderReply(err)

	case *SubmitDetails:
		return s.orderReply(s.flow.SubmitDetails(msg.Details))

	case *ConfirmPayment:
		receipt, err := s.flow.ConfirmPayment()
		if err == nil {
			s.logger.Info("Payment confirmed",
				zap.String("order_ref", receipt.OrderRef),
				zap.Int64("total", receipt.Total))
			s.emit(EventPaymentConfirmed, map[string]interface{}{
				"order_ref":  receipt.OrderRef,
				"item_count": len(receipt.Items),
				"total":      receipt.Total,
			})
		}
		return s.orderReply(err)

	case *CancelCheckout:
		return s.orderReply(s.flow.Cancel())

	case *Acknowledge:
		var ref string
		if r, ok := s.flow.Receipt(); ok {
			ref = r.OrderRef
		}
		err := s.flow.Acknowledge()
		if err == nil {
			s.emit(EventOrderAcknowledged, map[string]interface{}{"order_ref": ref})
		}
		return s.orderReply(err)
	}
	return nil
}

func (s *Storefront) withStudio(fn func(ds *design.Session) error) *Reply {
	if !s.open {
		return s.studioReply(ErrStudioClosed)
	}
	return s.studioReply(fn(s.design))
}

// closeStudio discards the design, so the next OpenStudio starts fresh.
func (s *Storefront) closeStudio() {
	if !s.open {
		return
	}
	s.design.Reset()
	s.open = false
	s.resetAdvice()
	s.logger.Debug("Studio closed")
}

func (s *Storefront) resetAdvice() {
	s.generation++
	s.advice = ""
	s.advicePending = false
}

func (s *Storefront) addDesignToCart() *Reply {
	if !s.open {
		return &Reply{Studio: s.studioView(), Order: s.orderView(), Err: ErrStudioClosed}
	}
	item := s.design.Finalize()
	if err := s.flow.AddItem(item); err != nil {
		return &Reply{Studio: s.studioView(), Order: s.orderView(), Err: err}
	}
	s.emitItemAdded(item, "studio")
	s.closeStudio()
	return &Reply{Studio: s.studioView(), Order: s.orderView()}
}

// requestAdvice fetches advice off the actor goroutine and posts the result
// back as adviceResolved.
func (s *Storefront) requestAdvice(ctx actor.Context, msg *RequestAdvice) *Reply {
	if !s.open {
		return s.studioReply(ErrStudioClosed)
	}
	if s.deps.Advisor == nil {
		return s.studioReply(nil)
	}
	s.resetAdvice()
	s.advicePending = true

	generation := s.generation
	product := s.design.Product()
	advisor := s.deps.Advisor
	system, self := ctx.ActorSystem(), ctx.Self()
	go func() {
		text := advisor.Advise(context.Background(), msg.Username, product)
		system.Root.Send(self, &adviceResolved{generation: generation, text: text})
	}()

	return s.studioReply(nil)
}

func (s *Storefront) applyAdvice(msg *adviceResolved) {
	if !s.open || msg.generation != s.generation {
		s.logger.Debug("Dropping stale advice", zap.Uint64("generation", msg.generation))
		return
	}
	s.advice = msg.text
	s.advicePending = false
}

func (s *Storefront) emitItemAdded(item design.CartItem, source string) {
	s.emit(EventCartItemAdded, map[string]interface{}{
		"item_id":     item.ID,
		"product":     string(item.Product),
		"price":       item.Price,
		"decorations": len(item.Decorations),
		"source":      source,
	})
}

func (s *Storefront) emit(t EventType, data map[string]interface{}) {
	e := Event{Type: t, ClientID: s.clientID, Data: data, At: s.deps.Now()}
	sink, logger := s.deps.Sink, s.logger
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()
		if err := sink.RecordEvent(ctx, e); err != nil {
			logger.Warn("Failed to record event", zap.String("event", string(t)), zap.Error(err))
		}
	}()
}

func (s *Storefront) studioView() *StudioView {
	v := &StudioView{
		Elements:      []design.Element{},
		Advice:        s.advice,
		AdvicePending: s.advicePending,
	}
	if !s.open {
		return v
	}
	snap := s.design.Surface().Snapshot()
	v.Open = true
	v.Product = s.design.Product()
	v.Color = s.design.Color()
	v.BasePrice = s.design.BasePrice()
	v.BasePriceDisplay = currency.FormatIDR(v.BasePrice)
	v.Elements = snap.Elements
	v.ActiveID = snap.ActiveID
	v.Version = snap.Version
	return v
}

func (s *Storefront) orderView() *OrderView {
	return newOrderView(s.flow)
}

func (s *Storefront) studioReply(err error) *Reply {
	return &Reply{Studio: s.studioView(), Err: err}
}

func (s *Storefront) orderReply(err error) *Reply {
	return &Reply{Order: s.orderView(), Err: err}
}
