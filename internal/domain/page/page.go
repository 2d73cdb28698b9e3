package page

import "context"

// Fetcher retrieves the raw HTML of a static page. Implemented by the HTTP
// fetcher in infra; the core never depends on a concrete transport.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Element is a handle to a rendered DOM element.
type Element interface {
	// Text returns the element's full descendant text.
	Text(ctx context.Context) (string, error)
	// Closest returns the nearest ancestor matching the selector, or nil.
	Closest(ctx context.Context, selector string) (Element, error)
}

// RenderSession is the capability surface of a browser-automation driver for
// dynamic or authenticated pages. The monitor owns exactly one session for the
// process lifetime and must Close it on every exit path. This package defines
// only the capability; the driver itself is an external collaborator.
type RenderSession interface {
	Goto(ctx context.Context, url string) error
	WaitIdle(ctx context.Context) error
	Fill(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	// Visible reports whether an element matching the selector is currently
	// visible. Probing an absent selector is not an error.
	Visible(ctx context.Context, selector string) bool
	QueryAll(ctx context.Context, selector string) ([]Element, error)
	// Evaluate runs a JavaScript expression and returns its value.
	Evaluate(ctx context.Context, script string) (any, error)
	Screenshot(ctx context.Context, path string) error
	Close() error
}
