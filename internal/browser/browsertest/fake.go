// Package browsertest provides scriptable fakes for the browser interfaces.
package browsertest

import (
	"fmt"
	"time"

	"github.com/example/slotwatch/internal/browser"
)

// Page is a scriptable browser.Page. Selectors are visible when marked so in
// Visible; locator text comes from Texts; match counts default to 1 for
// visible selectors and 0 otherwise unless overridden in Counts.
type Page struct {
	Visible map[string]bool
	Texts   map[string]string
	Counts  map[string]int
	// Boxes maps a selector to per-index bounding boxes; a nil entry means
	// the element cannot be measured.
	Boxes map[string][]*browser.Box

	ClickErrs      map[string]error
	ForceClickErrs map[string]error
	// InnerTextErr, when set, fails every text extraction on this page.
	InnerTextErr error

	// OnClick observes every successful click.
	OnClick func(selector string, index int)

	Gotos       []string
	Clicked     []string
	Filled      map[string]string
	Pressed     []string
	Screenshots []string
	ContentHTML string
}

func NewPage() *Page {
	return &Page{
		Visible:        map[string]bool{},
		Texts:          map[string]string{},
		Counts:         map[string]int{},
		Boxes:          map[string][]*browser.Box{},
		ClickErrs:      map[string]error{},
		ForceClickErrs: map[string]error{},
		Filled:         map[string]string{},
	}
}

func (p *Page) Goto(url string, _ browser.LoadState, _ time.Duration) error {
	p.Gotos = append(p.Gotos, url)
	return nil
}

func (p *Page) Locator(selector string) browser.Locator {
	return &locator{page: p, selector: selector}
}

func (p *Page) WaitForLoadState(browser.LoadState, time.Duration) error { return nil }

func (p *Page) InnerText(selector string) (string, error) {
	if p.InnerTextErr != nil {
		return "", p.InnerTextErr
	}
	return p.Texts[selector], nil
}

func (p *Page) Content() (string, error) {
	if p.InnerTextErr != nil {
		return "", p.InnerTextErr
	}
	return p.ContentHTML, nil
}

func (p *Page) Screenshot(path string) error {
	p.Screenshots = append(p.Screenshots, path)
	return nil
}

type locator struct {
	page     *Page
	selector string
	index    int
}

func (l *locator) First() browser.Locator { return &locator{page: l.page, selector: l.selector} }

func (l *locator) Nth(i int) browser.Locator {
	return &locator{page: l.page, selector: l.selector, index: i}
}

func (l *locator) Count() (int, error) {
	if n, ok := l.page.Counts[l.selector]; ok {
		return n, nil
	}
	if l.page.Visible[l.selector] {
		return 1, nil
	}
	return 0, nil
}

func (l *locator) WaitVisible(time.Duration) error {
	if l.page.Visible[l.selector] {
		return nil
	}
	return fmt.Errorf("timeout waiting for %q", l.selector)
}

func (l *locator) Click(_ time.Duration, force bool) error {
	errs := l.page.ClickErrs
	if force {
		errs = l.page.ForceClickErrs
	}
	if err := errs[l.selector]; err != nil {
		return err
	}
	l.page.Clicked = append(l.page.Clicked, fmt.Sprintf("%s#%d", l.selector, l.index))
	if l.page.OnClick != nil {
		l.page.OnClick(l.selector, l.index)
	}
	return nil
}

func (l *locator) Fill(value string) error {
	l.page.Filled[l.selector] = value
	return nil
}

func (l *locator) Press(key string) error {
	l.page.Pressed = append(l.page.Pressed, l.selector+":"+key)
	return nil
}

func (l *locator) InnerText() (string, error) {
	if l.page.InnerTextErr != nil {
		return "", l.page.InnerTextErr
	}
	return l.page.Texts[l.selector], nil
}

func (l *locator) BoundingBox() (browser.Box, bool) {
	boxes := l.page.Boxes[l.selector]
	if l.index >= len(boxes) || boxes[l.index] == nil {
		return browser.Box{}, false
	}
	return *boxes[l.index], true
}

// Session is a scriptable browser.Session. Each ActivePage call returns the
// next page from Queue, sticking on the last one, which lets tests simulate
// a tab swap between acquisitions.
type Session struct {
	Queue  []*Page
	Closed bool
	// ErrAt fails the ActivePage call with the given zero-based index.
	ErrAt map[int]error

	calls int
}

func NewSession(pages ...*Page) *Session {
	return &Session{Queue: pages}
}

func (s *Session) ActivePage() (browser.Page, error) {
	i := s.calls
	s.calls++
	if err := s.ErrAt[i]; err != nil {
		return nil, err
	}
	if len(s.Queue) == 0 {
		return nil, fmt.Errorf("no pages")
	}
	if i >= len(s.Queue) {
		i = len(s.Queue) - 1
	}
	return s.Queue[i], nil
}

func (s *Session) Close() { s.Closed = true }
