package order

import (
	"fmt"
	"time"

	"github.com/example/adoreshop/pkg/design"
)

// Notes is the pool a receipt's celebratory note is drawn from.
var Notes = []string{
	"Adorable-nesss is now yours!",
	"Stay adoreable^^",
	"XOXO",
	"You look lovely with this!",
	"Sending you huge hugs!",
	"Have a-dorable day!",
}

// Receipt is the read-only result of a confirmed payment. OrderRef is a
// display token only and is not guaranteed unique.
type Receipt struct {
	OrderRef string            `json:"order_ref"`
	Note     string            `json:"note"`
	Items    []design.CartItem `json:"items"`
	Details  CheckoutDetails   `json:"details"`
	Total    int64             `json:"total"`
	IssuedAt time.Time         `json:"issued_at"`
}

func (r *Receipt) clone() *Receipt {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Items = make([]design.CartItem, len(r.Items))
	for i, it := range r.Items {
		cp.Items[i] = it.Clone()
	}
	return &cp
}

func orderRef(n int) string {
	return fmt.Sprintf("ADR-%d", n)
}
