package browser

import (
	"context"
	"fmt"
	"time"

	"web_monitor_bot/internal/domain/page"
)

const (
	scrollToBottom = "window.scrollTo(0, document.body.scrollHeight)"
	scrollToTop    = "window.scrollTo(0, 0)"
	bodyHeightExpr = "document.body.scrollHeight"
)

// ScrollToLoadAll scrolls to the bottom repeatedly until the document height
// stops growing (or maxScrolls is reached), so lazily rendered cards are all
// in the DOM before extraction. Returns the number of scrolls performed.
func ScrollToLoadAll(ctx context.Context, session page.RenderSession, maxScrolls int, waitTime time.Duration) (int, error) {
	lastHeight, err := bodyHeight(ctx, session)
	if err != nil {
		return 0, err
	}

	scrolls := 0
	for i := 0; i < maxScrolls; i++ {
		if _, err := session.Evaluate(ctx, scrollToBottom); err != nil {
			return scrolls, fmt.Errorf("error scrolling page: %w", err)
		}
		if err := wait(ctx, waitTime); err != nil {
			return scrolls, err
		}

		newHeight, err := bodyHeight(ctx, session)
		if err != nil {
			return scrolls, err
		}
		scrolls++

		if newHeight == lastHeight {
			break
		}
		lastHeight = newHeight
	}

	// Back to the top so extraction sees the page as a user would.
	if _, err := session.Evaluate(ctx, scrollToTop); err != nil {
		return scrolls, fmt.Errorf("error scrolling back to top: %w", err)
	}
	if err := wait(ctx, 500*time.Millisecond); err != nil {
		return scrolls, err
	}
	return scrolls, nil
}

func bodyHeight(ctx context.Context, session page.RenderSession) (int, error) {
	v, err := session.Evaluate(ctx, bodyHeightExpr)
	if err != nil {
		return 0, fmt.Errorf("error reading page height: %w", err)
	}
	switch h := v.(type) {
	case int:
		return h, nil
	case int64:
		return int(h), nil
	case float64:
		return int(h), nil
	default:
		return 0, fmt.Errorf("unexpected page height type %T", v)
	}
}
