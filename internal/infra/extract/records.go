package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"web_monitor_bot/internal/domain/offering"
)

// Strategy is one DOM query in the cascading extraction policy. Strategies
// are evaluated in priority order; which strategy supplied a candidate never
// affects how the candidate is parsed.
type Strategy struct {
	Name     string
	Selector string
}

// Strategies for locating offering cards, most specific first. The page is a
// MUI single-page app, so card paragraphs inside MuiPaper containers are the
// primary target; the later entries are fallbacks for markup drift.
var Strategies = []Strategy{
	{Name: "mui-card-paragraph", Selector: "div[class*='MuiPaper-root'] p"},
	{Name: "mui-typography", Selector: "div[class*='MuiPaper-root'] div[class*='MuiTypography']"},
	{Name: "mui-card-any", Selector: "div[class*='MuiPaper-root'] *"},
	{Name: "generic-block", Selector: "p, div, span"},
}

// CardContainerSelector matches the enclosing card of a heading element; the
// container text feeds price/location/date enrichment.
const CardContainerSelector = "div[class*='MuiPaper-root'], div[class*='card'], div[class*='MuiBox-root']"

const (
	delimiter = "|"

	// EarlyExitThreshold stops trying further strategies once this many
	// qualifying candidates have been collected. An optimization only;
	// correctness never depends on which strategy found a candidate.
	EarlyExitThreshold = 5

	minCandidateRunes = 15
	maxCandidateRunes = 300

	// minHeadingRunes drops noise: cleaned headings this short are not
	// real offerings.
	minHeadingRunes = 10
)

// domainKeywords is the allow-list a candidate must hit at least once.
var domainKeywords = []string{
	"NATATION", "TRIATHLON", "LICENCE", "ECOLE",
	"AQUA", "FITNESS", "COURS", "ENTRAINEMENT",
}

// Candidate is a raw heading candidate plus the text of its enclosing card.
type Candidate struct {
	Text      string
	Container string
}

// Qualifies reports whether an element's text looks like an offering heading:
// delimited, keyword-bearing, of plausible length, and not price-only or
// availability boilerplate.
func Qualifies(text string) bool {
	n := utf8.RuneCountInString(text)
	if n <= minCandidateRunes || n >= maxCandidateRunes {
		return false
	}
	if !strings.Contains(text, delimiter) {
		return false
	}
	if strings.HasPrefix(text, "€") {
		return false
	}
	if strings.Contains(strings.ToLower(text), "disponibles") {
		return false
	}
	upper := strings.ToUpper(text)
	for _, kw := range domainKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

// CollectCandidates gathers qualifying heading candidates from a parsed
// document, applying the strategies in order with the early-exit threshold.
// Duplicate texts across strategies are collected once.
func CollectCandidates(doc *goquery.Document) []Candidate {
	var candidates []Candidate
	seen := make(map[string]struct{})
	for _, strat := range Strategies {
		if len(candidates) > EarlyExitThreshold {
			break
		}
		doc.Find(strat.Selector).Each(func(_ int, s *goquery.Selection) {
			text := CollapseWhitespace(s.Text())
			if !Qualifies(text) {
				return
			}
			if _, ok := seen[text]; ok {
				return
			}
			seen[text] = struct{}{}
			container := ""
			if card := s.Closest(CardContainerSelector); card.Length() > 0 {
				container = CollapseWhitespace(card.First().Text())
			}
			candidates = append(candidates, Candidate{Text: text, Container: container})
		})
	}
	return candidates
}

// Offerings extracts the deduplicated offering list from a parsed document,
// in document order of first occurrence.
func Offerings(doc *goquery.Document) []offering.Offering {
	return BuildOfferings(CollectCandidates(doc))
}

// BuildOfferings cleans, parses, filters and deduplicates heading candidates.
// Shared by the static-document and render-session collection paths.
func BuildOfferings(candidates []Candidate) []offering.Offering {
	offerings := make([]offering.Offering, 0, len(candidates))
	for _, c := range candidates {
		heading := CleanHeading(c.Text)
		if utf8.RuneCountInString(heading) <= minHeadingRunes {
			continue
		}
		o := offering.ParseHeading(heading)
		enrich(&o, c.Container)
		offerings = append(offerings, o)
	}
	return offering.Dedup(offerings)
}

// CleanHeading strips boilerplate that the page concatenates onto card
// headings: an "À partir de ..." price tail, anything after a currency symbol
// when the prefix is still a delimited heading, and the trailing
// call-to-action.
func CleanHeading(text string) string {
	heading := strings.TrimSpace(text)
	if i := strings.Index(heading, "À partir de"); i >= 0 {
		heading = strings.TrimSpace(heading[:i])
	}
	if !strings.HasPrefix(heading, "€") {
		if i := strings.Index(heading, "€"); i >= 0 && strings.Contains(heading[:i], delimiter) {
			heading = strings.TrimSpace(heading[:i])
		}
	}
	heading = strings.TrimSuffix(strings.TrimSpace(heading), "S'inscrire")
	return strings.TrimRight(heading, "| ")
}
