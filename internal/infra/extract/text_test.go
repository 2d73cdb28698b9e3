package extract_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web_monitor_bot/internal/infra/extract"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const announcement = "Chers parents, les inscriptions pour l'école de natation ouvrent " +
	"à la rentrée sportive. Merci de préparer vos dossiers dès maintenant."

func TestTargetTextFindsRawTextNode(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<div>Some unrelated navigation text that is quite long but misses keywords</div>
		<p>`+announcement+`</p>
	</body></html>`)

	got, err := extract.TargetText(doc, []string{"Chers parents", "école de natation", "rentrée sportive"}, 50)
	require.NoError(t, err)
	assert.Equal(t, announcement, got)
}

func TestTargetTextFallsBackToBlockElements(t *testing.T) {
	// The keywords are split across child nodes, so no single raw text node
	// matches; only the combined element text does.
	doc := parseDoc(t, `<html><body><div>
		<span>Chers parents, les inscriptions pour </span>
		<b>l'école de natation</b>
		<span> ouvrent à la rentrée sportive. Merci de préparer vos dossiers.</span>
	</div></body></html>`)

	got, err := extract.TargetText(doc, []string{"Chers parents", "école de natation", "rentrée sportive"}, 50)
	require.NoError(t, err)
	assert.Contains(t, got, "Chers parents")
	assert.Contains(t, got, "rentrée sportive")
	assert.NotContains(t, got, "\n")
}

func TestTargetTextFallbackPrefersParagraphOverWrapper(t *testing.T) {
	// Keywords split across the paragraph's children defeat pass 1. In pass 2
	// the enclosing layout div also matches (its descendant text contains the
	// paragraph's), but paragraphs are scanned first, so page chrome around
	// the announcement never leaks into the extracted content.
	doc := parseDoc(t, `<html><body><div class="layout">
		<nav>Accueil Activités Tarifs Contact</nav>
		<p>
			<span>Chers parents, les inscriptions pour </span>
			<b>l'école de natation</b>
			<span> ouvrent à la rentrée sportive. Merci de préparer vos dossiers.</span>
		</p>
		<footer>Mentions légales © 2025</footer>
	</div></body></html>`)

	got, err := extract.TargetText(doc, []string{"Chers parents", "école de natation", "rentrée sportive"}, 50)
	require.NoError(t, err)
	assert.Contains(t, got, "Chers parents")
	assert.NotContains(t, got, "Accueil")
	assert.NotContains(t, got, "Mentions légales")
}

func TestTargetTextKeywordsAreCaseInsensitive(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>`+strings.ToUpper(announcement)+`</p></body></html>`)

	_, err := extract.TargetText(doc, []string{"chers parents", "ÉCOLE DE NATATION", "rentrée sportive"}, 50)
	require.NoError(t, err)
}

func TestTargetTextNotFound(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "keywords absent",
			html: `<p>A long paragraph about something else entirely, with plenty of words but none of the ones we monitor for changes.</p>`,
		},
		{
			name: "match too short",
			html: `<p>Chers parents école de natation rentrée sportive</p>`,
		},
		{
			name: "match only inside script",
			html: `<script>var s = "` + announcement + `";</script>`,
		},
		{
			name: "empty document",
			html: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, "<html><body>"+tt.html+"</body></html>")
			_, err := extract.TargetText(doc, []string{"Chers parents", "école de natation", "rentrée sportive"}, 50)
			require.ErrorIs(t, err, extract.ErrTargetNotFound)
		})
	}
}

func TestTargetTextCollapsesWhitespace(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>Chers parents,    les inscriptions
		pour   l'école de natation	ouvrent à la rentrée sportive. Merci de préparer vos dossiers.</p></body></html>`)

	got, err := extract.TargetText(doc, []string{"Chers parents", "école de natation", "rentrée sportive"}, 50)
	require.NoError(t, err)
	assert.NotContains(t, got, "  ")
	assert.NotContains(t, got, "\t")
}

func TestTargetTextDeterministicFirstMatch(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<p id="first">`+announcement+` (version une)</p>
		<p id="second">`+announcement+` (version deux)</p>
	</body></html>`)

	first, err := extract.TargetText(doc, []string{"Chers parents", "école de natation", "rentrée sportive"}, 50)
	require.NoError(t, err)
	again, err := extract.TargetText(doc, []string{"Chers parents", "école de natation", "rentrée sportive"}, 50)
	require.NoError(t, err)

	assert.Equal(t, first, again)
	assert.Contains(t, first, "version une")
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  a  b  ", "a b"},
		{"a\n\tb", "a b"},
		{"", ""},
		{"one", "one"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extract.CollapseWhitespace(tt.in))
	}
}
