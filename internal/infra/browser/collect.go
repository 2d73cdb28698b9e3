package browser

import (
	"context"

	"web_monitor_bot/internal/domain/page"
	"web_monitor_bot/internal/infra/extract"
)

// CollectCandidates gathers qualifying offering-heading candidates from a
// live render session, applying the same strategy order, qualification rules
// and early-exit threshold as the static-document path. Selector errors on
// individual strategies or elements are skipped; the remaining strategies
// still run.
func CollectCandidates(ctx context.Context, session page.RenderSession) ([]extract.Candidate, error) {
	var candidates []extract.Candidate
	seen := make(map[string]struct{})

	for _, strat := range extract.Strategies {
		if len(candidates) > extract.EarlyExitThreshold {
			break
		}
		elems, err := session.QueryAll(ctx, strat.Selector)
		if err != nil {
			continue
		}
		for _, el := range elems {
			raw, err := el.Text(ctx)
			if err != nil {
				continue
			}
			text := extract.CollapseWhitespace(raw)
			if !extract.Qualifies(text) {
				continue
			}
			if _, ok := seen[text]; ok {
				continue
			}
			seen[text] = struct{}{}

			container := ""
			if card, err := el.Closest(ctx, extract.CardContainerSelector); err == nil && card != nil {
				if cardText, err := card.Text(ctx); err == nil {
					container = extract.CollapseWhitespace(cardText)
				}
			}
			candidates = append(candidates, extract.Candidate{Text: text, Container: container})
		}
	}
	return candidates, nil
}
