package extract

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrTargetNotFound signals that the page was reachable but the target
// content pattern is absent. Callers must treat this as a non-fatal,
// abort-this-cycle condition, distinct from a fetch failure.
var ErrTargetNotFound = errors.New("target text not found on page")

var whitespaceRun = regexp.MustCompile(`\s+`)

// blockTags are the element types scanned in the fallback pass, in priority
// order: all paragraphs are tried before any div, so a matching paragraph is
// never shadowed by a wrapper whose descendant text also matches.
var blockTags = []string{"p", "div", "span", "article"}

// TargetText locates the monitored paragraph in a parsed document.
//
// First pass: every raw text node in document order; a node matches when its
// trimmed text is longer than minLength and contains every keyword
// (case-insensitive). Second pass: block-level elements by tag priority using
// their full descendant text. The first match wins in both passes, so the
// result is deterministic for a given document. Returns ErrTargetNotFound
// when neither pass matches.
func TargetText(doc *goquery.Document, keywords []string, minLength int) (string, error) {
	for _, root := range doc.Nodes {
		if text, ok := scanTextNodes(root, keywords, minLength); ok {
			return text, nil
		}
	}

	for _, tag := range blockTags {
		var found string
		doc.Find(tag).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := CollapseWhitespace(s.Text())
			if matchesTarget(text, keywords, minLength) {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found, nil
		}
	}
	return "", ErrTargetNotFound
}

// scanTextNodes walks the node tree in document order looking for a matching
// raw text node. Script and style subtrees carry no page text and are skipped.
func scanTextNodes(n *html.Node, keywords []string, minLength int) (string, bool) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return "", false
	}
	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if matchesTarget(text, keywords, minLength) {
			return CollapseWhitespace(text), true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text, ok := scanTextNodes(c, keywords, minLength); ok {
			return text, true
		}
	}
	return "", false
}

func matchesTarget(text string, keywords []string, minLength int) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) <= minLength {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, kw := range keywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}

// CollapseWhitespace reduces every whitespace run to a single space and trims
// the ends, so cosmetic reformatting of the page never looks like a change.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
