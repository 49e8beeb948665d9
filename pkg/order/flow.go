package order

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/example/adoreshop/pkg/design"
)

// Stage is a step of the order lifecycle.
type Stage string

const (
	StageIdle            Stage = "Idle"
	StageCartReview      Stage = "CartReview"
	StageCheckoutForm    Stage = "CheckoutForm"
	StageAwaitingPayment Stage = "AwaitingPayment"
	StageReceipt         Stage = "Receipt"
)

const orderRefSpace = 10000

// Flow sequences cart review, checkout details, payment confirmation and
// receipt for a single shopper. It owns the cart and the in-flight checkout
// data. The cart is emptied only by ConfirmPayment.
//
// Flow is not safe for concurrent use; transitions are expected to arrive
// one at a time from its owner.
type Flow struct {
	stage   Stage
	cart    Cart
	details *CheckoutDetails
	receipt *Receipt

	intN    func(n int) int
	nowFunc func() time.Time
}

type Option func(*Flow)

// WithRand makes note and order reference selection deterministic.
func WithRand(r *rand.Rand) Option {
	return func(f *Flow) { f.intN = r.IntN }
}

func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.nowFunc = now }
}

func NewFlow(opts ...Option) *Flow {
	f := &Flow{
		stage:   StageIdle,
		intN:    rand.IntN,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) Stage() Stage { return f.stage }

func (f *Flow) Items() []design.CartItem { return f.cart.Items() }

func (f *Flow) Len() int { return f.cart.Len() }

func (f *Flow) Total() int64 { return f.cart.Total() }

// Details returns the retained checkout details, if any were submitted.
func (f *Flow) Details() (CheckoutDetails, bool) {
	if f.details == nil {
		return CheckoutDetails{}, false
	}
	return *f.details, true
}

// PaymentAmount is the amount due while awaiting payment.
func (f *Flow) PaymentAmount() (int64, bool) {
	if f.stage != StageAwaitingPayment {
		return 0, false
	}
	return f.cart.Total(), true
}

// Receipt returns a copy of the receipt while in the Receipt stage.
func (f *Flow) Receipt() (*Receipt, bool) {
	if f.stage != StageReceipt || f.receipt == nil {
		return nil, false
	}
	return f.receipt.clone(), true
}

func (f *Flow) editable() bool {
	return f.stage == StageIdle || f.stage == StageCartReview
}

// AddItem appends a finished customization and shows the cart.
func (f *Flow) AddItem(item design.CartItem) error {
	if !f.editable() {
		return fmt.Errorf("add item in %s: %w", f.stage, ErrInvalidTransition)
	}
	f.cart.add(item)
	f.stage = StageCartReview
	return nil
}

// RemoveItem drops an item by id and returns it.
func (f *Flow) RemoveItem(id string) (design.CartItem, error) {
	if !f.editable() {
		return design.CartItem{}, fmt.Errorf("remove item in %s: %w", f.stage, ErrInvalidTransition)
	}
	item, ok := f.cart.remove(id)
	if !ok {
		return design.CartItem{}, fmt.Errorf("remove %s: %w", id, ErrItemNotFound)
	}
	return item, nil
}

func (f *Flow) OpenCart() error {
	if !f.editable() {
		return fmt.Errorf("open cart in %s: %w", f.stage, ErrInvalidTransition)
	}
	f.stage = StageCartReview
	return nil
}

func (f *Flow) CloseCart() error {
	if !f.editable() {
		return fmt.Errorf("close cart in %s: %w", f.stage, ErrInvalidTransition)
	}
	f.stage = StageIdle
	return nil
}

// SubmitCart moves to the checkout form. An empty cart is rejected without a
// transition. Calling it once checkout is already under way is a no-op.
func (f *Flow) SubmitCart() error {
	if !f.editable() {
		return nil
	}
	if f.cart.Len() == 0 {
		return ErrEmptyCart
	}
	f.stage = StageCheckoutForm
	return nil
}

// SubmitDetails stores the checkout details and moves to payment. Details are
// kept until the order is acknowledged so that re-opening the form shows them.
func (f *Flow) SubmitDetails(d CheckoutDetails) error {
	if f.stage != StageCheckoutForm {
		return fmt.Errorf("submit details in %s: %w", f.stage, ErrInvalidTransition)
	}
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return err
	}
	f.details = &d
	f.stage = StageAwaitingPayment
	return nil
}

// ConfirmPayment captures the cart into a receipt, then empties the cart.
func (f *Flow) ConfirmPayment() (*Receipt, error) {
	if f.stage != StageAwaitingPayment {
		return nil, fmt.Errorf("confirm payment in %s: %w", f.stage, ErrInvalidTransition)
	}
	items := f.cart.Items()
	f.receipt = &Receipt{
		OrderRef: orderRef(f.intN(orderRefSpace)),
		Note:     Notes[f.intN(len(Notes))],
		Items:    items,
		Details:  *f.details,
		Total:    Total(items),
		IssuedAt: f.nowFunc(),
	}
	f.cart.clear()
	f.stage = StageReceipt
	return f.receipt.clone(), nil
}

// Cancel backs out one stage without losing entered details.
func (f *Flow) Cancel() error {
	switch f.stage {
	case StageCheckoutForm:
		f.stage = StageCartReview
	case StageAwaitingPayment:
		f.stage = StageCheckoutForm
	default:
		return fmt.Errorf("cancel in %s: %w", f.stage, ErrInvalidTransition)
	}
	return nil
}

// Acknowledge closes the receipt and readies the flow for a new order.
func (f *Flow) Acknowledge() error {
	if f.stage != StageReceipt {
		return fmt.Errorf("acknowledge in %s: %w", f.stage, ErrInvalidTransition)
	}
	f.details = nil
	f.receipt = nil
	f.stage = StageIdle
	return nil
}
