package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"web_monitor_bot/internal/domain/offering"
)

var (
	priceRe = regexp.MustCompile(`(?:À partir de\s*)?\d[\d.,]*\s*€|€\s*\d[\d.,]*`)
	dateRe  = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
)

// locationMarkers are the venue substrings the activities page uses.
var locationMarkers = []string{"Cité Universitaire", "Paris", "75014"}

const maxPriceRunes = 50

// enrich fills price, location and dates from the enclosing card text.
// Best-effort and presence-based: absence is never an error, and when several
// sub-patterns match the first one wins.
func enrich(o *offering.Offering, container string) {
	if container == "" {
		return
	}
	if m := priceRe.FindString(container); m != "" && utf8.RuneCountInString(m) < maxPriceRunes {
		o.Price = strings.TrimSpace(m)
	}
	for _, marker := range locationMarkers {
		if strings.Contains(container, marker) {
			o.Location = marker
			break
		}
	}
	if m := dateRe.FindString(container); m != "" {
		o.Dates = m
	}
}
