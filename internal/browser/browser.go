// Package browser defines the narrow surface the watcher needs from a
// browser automation engine. The core packages drive these interfaces only;
// the playwright-backed implementation lives in this package and nothing
// else imports it.
package browser

import (
	"errors"
	"fmt"
	"time"
)

// LoadState names the page lifecycle events the watcher waits on.
type LoadState string

const (
	DOMContentLoaded LoadState = "domcontentloaded"
	Load             LoadState = "load"
	NetworkIdle      LoadState = "networkidle"
)

// Box is an element's position on screen. Elements that cannot be measured
// (offscreen, detached) report ok=false from BoundingBox.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Locator addresses the elements matching a selector. Action methods apply
// to the first match unless narrowed with Nth.
type Locator interface {
	First() Locator
	Nth(i int) Locator
	Count() (int, error)

	WaitVisible(timeout time.Duration) error
	Click(timeout time.Duration, force bool) error
	Fill(value string) error
	Press(key string) error
	InnerText() (string, error)
	BoundingBox() (Box, bool)
}

// Page is one document in the browsing context.
type Page interface {
	Goto(url string, waitUntil LoadState, timeout time.Duration) error
	Locator(selector string) Locator
	WaitForLoadState(state LoadState, timeout time.Duration) error
	InnerText(selector string) (string, error)
	Content() (string, error)
	Screenshot(path string) error
}

// Session is one browsing context. Navigation on the target site can open a
// new tab or replace the current document, so callers re-acquire the active
// page rather than holding one Page across navigations.
type Session interface {
	// ActivePage returns the most recently opened page in the context.
	ActivePage() (Page, error)
	Close()
}

// TransportError marks failures of the engine or the page transport (page
// closed, navigation destroyed the document, network timeout) as opposed to
// an element simply not being there. Extraction retries key off this.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("browser: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func transport(err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Err: err}
}
