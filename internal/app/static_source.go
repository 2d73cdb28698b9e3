package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"web_monitor_bot/internal/domain/page"
	"web_monitor_bot/internal/infra/extract"
)

// StaticSource extracts the target text block from a plain HTTP fetch of the
// monitored page. Suited to pages that render their content server side.
type StaticSource struct {
	fetcher   page.Fetcher
	url       string
	keywords  []string
	minLength int
}

func NewStaticSource(fetcher page.Fetcher, url string, keywords []string, minLength int) *StaticSource {
	return &StaticSource{
		fetcher:   fetcher,
		url:       url,
		keywords:  keywords,
		minLength: minLength,
	}
}

func (s *StaticSource) Snapshot(ctx context.Context) (string, error) {
	body, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", s.url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", s.url, err)
	}

	return extract.TargetText(doc, s.keywords, s.minLength)
}
