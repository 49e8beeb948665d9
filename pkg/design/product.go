package design

import "fmt"

// ProductKind is the closed set of customizable products.
type ProductKind string

const (
	Shirt    ProductKind = "Shirt"
	Tie      ProductKind = "Tie"
	Keychain ProductKind = "Keychain"
)

// Prices are in the smallest currency unit (IDR has no minor unit).
const (
	ShirtPrice    int64 = 150000
	TiePrice      int64 = 75000
	KeychainPrice int64 = 35000
	FallbackPrice int64 = 100000
)

const DefaultColor = "#fce4ec"

// ProductKinds lists the kinds in display order.
var ProductKinds = []ProductKind{Shirt, Tie, Keychain}

// PriceFor looks up the base price of a product kind. Decorations never
// affect the price.
func PriceFor(kind ProductKind) int64 {
	switch kind {
	case Shirt:
		return ShirtPrice
	case Tie:
		return TiePrice
	case Keychain:
		return KeychainPrice
	default:
		return FallbackPrice
	}
}

func ParseProductKind(s string) (ProductKind, error) {
	for _, k := range ProductKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown product kind %q", s)
}

// Color is a named base color swatch.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

var Colors = []Color{
	{Name: "Mint", Hex: "#e0f7fa"},
	{Name: "Cream", Hex: "#fffde7"},
	{Name: "Peach", Hex: "#fff3e0"},
	{Name: "Pink", Hex: "#fce4ec"},
	{Name: "Lilac", Hex: "#f3e5f5"},
	{Name: "White", Hex: "#ffffff"},
}

var Stickers = []string{
	"🌸", "🎀", "⭐", "🐱", "💖", "🍓", "🥑", "✨",
	"🍄", "☁️", "🐰", "🍒", "🍭", "🦄", "🌵", "🎵",
}
