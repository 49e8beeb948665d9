package studio

import (
	"github.com/example/adoreshop/pkg/design"
	"github.com/example/adoreshop/pkg/order"
)

// Studio messages. Each is answered with a Reply carrying a StudioView.
type (
	OpenStudio  struct{}
	CloseStudio struct{}
	GetStudio   struct{}

	SelectProduct struct {
		Kind design.ProductKind
	}

	SelectColor struct {
		Hex string
	}

	AddElement struct {
		Kind    design.ElementKind
		Content string
	}

	RemoveElement struct {
		ID string
	}

	ClearDesign struct{}

	BeginDrag struct {
		ID string
	}

	UpdateDrag struct {
		X, Y float64
	}

	EndDrag struct{}

	// RequestAdvice answers immediately with AdvicePending set; the text
	// arrives later on the studio view.
	RequestAdvice struct {
		Username string
	}

	// AddDesignToCart finalizes the design, adds it to the cart and closes
	// the studio. The reply carries both views.
	AddDesignToCart struct{}
)

// Cart and checkout messages. Each is answered with a Reply carrying an
// OrderView.
type (
	GetOrder  struct{}
	OpenCart  struct{}
	CloseCart struct{}

	QuickAdd struct {
		EntryID string
	}

	RemoveCartItem struct {
		ID string
	}

	SubmitCart struct{}

	SubmitDetails struct {
		Details order.CheckoutDetails
	}

	ConfirmPayment struct{}
	CancelCheckout struct{}
	Acknowledge    struct{}
)

// Reply is the response to every request. Views are populated even when Err
// is set so callers can render the unchanged state.
type Reply struct {
	Studio *StudioView
	Order  *OrderView
	Err    error
}

// adviceResolved is posted back by the advice goroutine.
type adviceResolved struct {
	generation uint64
	text       string
}
