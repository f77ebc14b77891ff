package equiv

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Abbreviation thresholds for large equivalency values.
const (
	largeNumberThreshold = 1_000_000
	billionThreshold     = 1_000_000_000
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across environments.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatLarge formats million-scale values with abbreviated notation:
// "~5.2 million", "~1.5 billion". Values below the million threshold fall
// back to comma-separated integers.
func FormatLarge(n float64) string {
	if n >= billionThreshold {
		return fmt.Sprintf("~%.1f billion", n/billionThreshold)
	}
	if n >= largeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/largeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
