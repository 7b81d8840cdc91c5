// Package printing renders documents and reports into files: the printable
// PDF of an invoice or quotation and the spreadsheet export of the books.
package printing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Round2 rounds half away from zero to two places.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// Money formats amount with thousands separators and two decimals, prefixed by currency.
func Money(currency string, amount float64) string {
	if currency == "" {
		return printer.Sprintf("%.2f", Round2(amount))
	}
	return printer.Sprintf("%s %.2f", currency, Round2(amount))
}

// Quantity prints whole numbers without decimals and everything else with two.
func Quantity(q float64) string {
	d := decimal.NewFromFloat(q).Round(2)
	if d.IsInteger() {
		return d.String()
	}
	return d.StringFixed(2)
}
