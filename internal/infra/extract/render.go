package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"web_monitor_bot/internal/domain/offering"
)

const maxRenderedHeadingRunes = 100

// RenderOfferings flattens an offering list into the canonical text that gets
// fingerprinted and embedded in notifications. Stable for a given list:
// numbered lines in input order, long headings truncated, price and dates
// appended when present.
func RenderOfferings(offerings []offering.Offering) string {
	var b strings.Builder
	for i, o := range offerings {
		heading := o.Heading
		if utf8.RuneCountInString(heading) > maxRenderedHeadingRunes {
			heading = string([]rune(heading)[:maxRenderedHeadingRunes]) + "..."
		}
		fmt.Fprintf(&b, "%d. %s", i+1, heading)
		if o.Price != "" {
			fmt.Fprintf(&b, " 💰 %s", o.Price)
		}
		if o.Dates != "" {
			fmt.Fprintf(&b, " 📅 %s", o.Dates)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
