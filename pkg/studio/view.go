package studio

import (
	"github.com/example/adoreshop/pkg/currency"
	"github.com/example/adoreshop/pkg/design"
	"github.com/example/adoreshop/pkg/order"
)

type StudioView struct {
	Open             bool               `json:"open"`
	Product          design.ProductKind `json:"product,omitempty"`
	Color            string             `json:"color,omitempty"`
	BasePrice        int64              `json:"base_price"`
	BasePriceDisplay string             `json:"base_price_display,omitempty"`
	Elements         []design.Element   `json:"elements"`
	ActiveID         string             `json:"active_id,omitempty"`
	Version          uint64             `json:"version"`
	Advice           string             `json:"advice,omitempty"`
	AdvicePending    bool               `json:"advice_pending"`
}

type ItemView struct {
	design.CartItem
	PriceDisplay string `json:"price_display"`
}

type ReceiptView struct {
	OrderRef     string                `json:"order_ref"`
	Note         string                `json:"note"`
	Items        []ItemView            `json:"items"`
	Details      order.CheckoutDetails `json:"details"`
	Total        int64                 `json:"total"`
	TotalDisplay string                `json:"total_display"`
}

type OrderView struct {
	Stage          order.Stage            `json:"stage"`
	Items          []ItemView             `json:"items"`
	Total          int64                  `json:"total"`
	TotalDisplay   string                 `json:"total_display"`
	Details        *order.CheckoutDetails `json:"details,omitempty"`
	PaymentAmount  *int64                 `json:"payment_amount,omitempty"`
	PaymentDisplay string                 `json:"payment_display,omitempty"`
	Receipt        *ReceiptView           `json:"receipt,omitempty"`
}

func itemViews(items []design.CartItem) []ItemView {
	out := make([]ItemView, len(items))
	for i, it := range items {
		out[i] = ItemView{CartItem: it, PriceDisplay: currency.FormatIDR(it.Price)}
	}
	return out
}

func newOrderView(f *order.Flow) *OrderView {
	v := &OrderView{
		Stage:        f.Stage(),
		Items:        itemViews(f.Items()),
		Total:        f.Total(),
		TotalDisplay: currency.FormatIDR(f.Total()),
	}
	if d, ok := f.Details(); ok {
		v.Details = &d
	}
	if amount, ok := f.PaymentAmount(); ok {
		v.PaymentAmount = &amount
		v.PaymentDisplay = currency.FormatIDR(amount)
	}
	if r, ok := f.Receipt(); ok {
		v.Receipt = &ReceiptView{
			OrderRef:     r.OrderRef,
			Note:         r.Note,
			Items:        itemViews(r.Items),
			Details:      r.Details,
			Total:        r.Total,
			TotalDisplay: currency.FormatIDR(r.Total),
		}
	}
	return v
}
