package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount in rupiah with id-ID digit grouping and no
// fraction digits, e.g. "Rp 150.000".
func FormatIDR(amount int64) string {
	if amount < 0 {
		// magnitude as uint64 so math.MinInt64 does not overflow
		return "-Rp " + printer.Sprintf("%d", uint64(-(amount+1))+1)
	}
	return "Rp " + printer.Sprintf("%d", amount)
}
