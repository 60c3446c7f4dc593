// Package format renders figures the way the dashboard labels them.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.French)

// Number abbreviates millions and thousands with one decimal ("1.2M", "3.4k") and
// prints smaller values in French notation.
func Number(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	}
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// NumberFull prints v in French notation with digit grouping and no decimals.
func NumberFull(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

func Hectares(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.2fM ha", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fk ha", v/1_000)
	}
	return fmt.Sprintf("%.0f ha", v)
}
