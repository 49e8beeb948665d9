package design

import "time"

// CatalogEntry is a ready-made product that can be added without customizing.
type CatalogEntry struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Kind  ProductKind `json:"type"`
	Color string      `json:"color"`
	Price int64       `json:"price"`
}

var Catalog = []CatalogEntry{
	{ID: "1", Name: "Minty Fresh Tee", Kind: Shirt, Color: "#e0f7fa", Price: ShirtPrice},
	{ID: "2", Name: "Business Pink", Kind: Tie, Color: "#fce4ec", Price: TiePrice},
	{ID: "3", Name: "Sunny Charm", Kind: Keychain, Color: "#fffde7", Price: KeychainPrice},
	{ID: "4", Name: "Lilac Dreams", Kind: Shirt, Color: "#f3e5f5", Price: ShirtPrice},
	{ID: "5", Name: "Peachy Day", Kind: Shirt, Color: "#fff3e0", Price: ShirtPrice},
	{ID: "6", Name: "Sky High", Kind: Tie, Color: "#e3f2fd", Price: TiePrice},
}

func LookupCatalog(id string) (CatalogEntry, bool) {
	for _, e := range Catalog {
		if e.ID == id {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// CartItem builds an undecorated cart item priced from the entry.
func (e CatalogEntry) CartItem(now time.Time) CartItem {
	return CartItem{
		ID:          newCartItemID(),
		Product:     e.Kind,
		BaseColor:   e.Color,
		Decorations: []Element{},
		Price:       e.Price,
		CreatedAt:   now,
	}
}
