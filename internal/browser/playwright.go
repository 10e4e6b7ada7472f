package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Options configures the playwright-backed session.
type Options struct {
	Headless bool
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	initial playwright.Page
}

// StartPlaywright launches a Chromium browsing context with one open page.
// The returned session owns the whole playwright stack and tears it down on
// Close.
func StartPlaywright(opts Options) (Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, transport(err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, transport(err)
	}
	bctx, err := b.NewContext()
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, transport(err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = b.Close()
		_ = pw.Stop()
		return nil, transport(err)
	}
	return &playwrightSession{pw: pw, browser: b, bctx: bctx, initial: page}, nil
}

func (s *playwrightSession) ActivePage() (Page, error) {
	pages := s.bctx.Pages()
	if len(pages) > 0 {
		return &playwrightPage{p: pages[len(pages)-1]}, nil
	}
	return &playwrightPage{p: s.initial}, nil
}

func (s *playwrightSession) Close() {
	_ = s.bctx.Close()
	_ = s.browser.Close()
	_ = s.pw.Stop()
}

type playwrightPage struct {
	p playwright.Page
}

func (p *playwrightPage) Goto(url string, waitUntil LoadState, timeout time.Duration) error {
	_, err := p.p.Goto(url, playwright.PageGotoOptions{
		WaitUntil: waitUntilState(waitUntil),
		Timeout:   ms(timeout),
	})
	return transport(err)
}

func (p *playwrightPage) Locator(selector string) Locator {
	return &playwrightLocator{l: p.p.Locator(selector)}
}

func (p *playwrightPage) WaitForLoadState(state LoadState, timeout time.Duration) error {
	return transport(p.p.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   loadState(state),
		Timeout: ms(timeout),
	}))
}

func (p *playwrightPage) InnerText(selector string) (string, error) {
	text, err := p.p.InnerText(selector)
	return text, transport(err)
}

func (p *playwrightPage) Content() (string, error) {
	content, err := p.p.Content()
	return content, transport(err)
}

func (p *playwrightPage) Screenshot(path string) error {
	_, err := p.p.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return transport(err)
}

type playwrightLocator struct {
	l playwright.Locator
}

func (l *playwrightLocator) First() Locator {
	return &playwrightLocator{l: l.l.First()}
}

func (l *playwrightLocator) Nth(i int) Locator {
	return &playwrightLocator{l: l.l.Nth(i)}
}

func (l *playwrightLocator) Count() (int, error) {
	n, err := l.l.Count()
	return n, transport(err)
}

func (l *playwrightLocator) WaitVisible(timeout time.Duration) error {
	return transport(l.l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(timeout),
	}))
}

func (l *playwrightLocator) Click(timeout time.Duration, force bool) error {
	return transport(l.l.Click(playwright.LocatorClickOptions{
		Timeout: ms(timeout),
		Force:   playwright.Bool(force),
	}))
}

func (l *playwrightLocator) Fill(value string) error {
	return transport(l.l.Fill(value))
}

func (l *playwrightLocator) Press(key string) error {
	return transport(l.l.Press(key))
}

func (l *playwrightLocator) InnerText() (string, error) {
	text, err := l.l.InnerText()
	return text, transport(err)
}

func (l *playwrightLocator) BoundingBox() (Box, bool) {
	r, err := l.l.BoundingBox()
	if err != nil || r == nil {
		return Box{}, false
	}
	return Box{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, true
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func waitUntilState(s LoadState) *playwright.WaitUntilState {
	switch s {
	case NetworkIdle:
		return playwright.WaitUntilStateNetworkidle
	case Load:
		return playwright.WaitUntilStateLoad
	default:
		return playwright.WaitUntilStateDomcontentloaded
	}
}

func loadState(s LoadState) *playwright.LoadState {
	switch s {
	case NetworkIdle:
		return playwright.LoadStateNetworkidle
	case Load:
		return playwright.LoadStateLoad
	default:
		return playwright.LoadStateDomcontentloaded
	}
}
