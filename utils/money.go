package utils

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount formats an integer amount in the smallest currency unit as a
// string like "108,000", using a comma as thousands separator.
func FormatAmount(amount int64) string {
	return amountPrinter.Sprintf("%d", amount)
}

// FormatPercent renders a 0..1 rate as a whole percent, e.g. 0.19 -> "19%".
func FormatPercent(rate float64) string {
	return strconv.FormatFloat(math.Round(rate*100), 'f', 0, 64) + "%"
}
