package order

import "github.com/example/adoreshop/pkg/design"

// Cart is the ordered list of items for the active session. There are no
// quantities; every customization is its own unit.
type Cart struct {
	items []design.CartItem
}

func (c *Cart) add(item design.CartItem) {
	c.items = append(c.items, item.Clone())
}

func (c *Cart) remove(id string) (design.CartItem, bool) {
	for i, it := range c.items {
		if it.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return it, true
		}
	}
	return design.CartItem{}, false
}

func (c *Cart) clear() {
	c.items = nil
}

// Items returns deep copies in add order.
func (c *Cart) Items() []design.CartItem {
	out := make([]design.CartItem, len(c.items))
	for i, it := range c.items {
		out[i] = it.Clone()
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Total is the sum of unit prices.
func (c *Cart) Total() int64 {
	return Total(c.items)
}

func Total(items []design.CartItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Price
	}
	return sum
}
