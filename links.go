package folio

import "github.com/pkg/browser"

// LinkOpener opens an external URL in a new, isolated context.
type LinkOpener interface {
	Open(url string) error
}

// BrowserOpener hands URLs to the system browser, which opens them in a
// separate process with no reference back to the experience.
type BrowserOpener struct{}

// Open launches the system browser on url.
func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}

// LinkOpenerFunc adapts a function to LinkOpener.
type LinkOpenerFunc func(url string) error

// Open calls f(url).
func (f LinkOpenerFunc) Open(url string) error {
	return f(url)
}
