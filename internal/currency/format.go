// Package currency renders amounts in the display style of the chosen
// currency symbol. Amounts themselves carry no currency; the symbol is a
// user setting applied at render time.
package currency

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbols lists the supported currency symbols in settings order.
func Symbols() []string {
	return []string{"£", "€", "$", "¥", "₹", "CHF"}
}

// IsValidSymbol reports whether the symbol is a supported setting value.
func IsValidSymbol(symbol string) bool {
	for _, s := range Symbols() {
		if s == symbol {
			return true
		}
	}
	return false
}

// layout pairs a locale with how the symbol attaches to the number.
type layout struct {
	tag            language.Tag
	prefix, suffix string
	fractionDigits int
}

var layouts = map[string]layout{
	"£":   {tag: language.BritishEnglish, prefix: "£", fractionDigits: 2},
	"€":   {tag: language.French, suffix: " €", fractionDigits: 2},
	"$":   {tag: language.AmericanEnglish, prefix: "$", fractionDigits: 2},
	"¥":   {tag: language.Japanese, prefix: "¥", fractionDigits: 0},
	"₹":   {tag: language.Hindi, prefix: "₹", fractionDigits: 2},
	"CHF": {tag: language.MustParse("de-CH"), suffix: " CHF", fractionDigits: 2},
}

// Formatter renders amounts for one currency symbol.
type Formatter struct {
	symbol string
}

// NewFormatter creates a formatter for the given symbol. Unknown symbols
// still format, falling back to "<symbol> <amount>".
func NewFormatter(symbol string) *Formatter {
	return &Formatter{symbol: symbol}
}

// Symbol returns the configured currency symbol.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Format renders an amount with locale-appropriate grouping and decimal
// separators for the configured symbol.
func (f *Formatter) Format(amount float64) string {
	l, ok := layouts[f.symbol]
	if !ok {
		return fmt.Sprintf("%s %.2f", f.symbol, amount)
	}

	printer := message.NewPrinter(l.tag)
	formatted := printer.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(l.fractionDigits),
		number.MaxFractionDigits(l.fractionDigits)))

	return l.prefix + formatted + l.suffix
}
