package render

import (
	"context"
	"errors"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// ChromeLauncher starts a dedicated headless Chrome process per session.
type ChromeLauncher struct {
	// ExecPath overrides the browser binary; empty uses chromedp's lookup.
	ExecPath string
}

func (l ChromeLauncher) Launch(ctx context.Context) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	s := &chromeSession{
		ctx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
	}
	// The first Run starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

type chromeSession struct {
	ctx    context.Context
	cancel func()
	once   sync.Once
	err    error
}

// PrintPDF runs in the session context, which derives from the context
// passed to Launch, so request cancellation also aborts the print.
func (s *chromeSession) PrintPDF(_ context.Context, html string) ([]byte, error) {
	var pdf []byte
	err := chromedp.Run(s.ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// Close shuts the browser down gracefully and then kills the process.
func (s *chromeSession) Close() error {
	s.once.Do(func() {
		s.err = chromedp.Cancel(s.ctx)
		s.cancel()
		if errors.Is(s.err, context.Canceled) || errors.Is(s.err, context.DeadlineExceeded) {
			s.err = nil
		}
	})
	return s.err
}
