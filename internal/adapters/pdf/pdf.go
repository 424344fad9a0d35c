// Package pdf renders HTML documents to PDF in headless Chromium.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ErrDisabled is returned by Disabled.
var ErrDisabled = errors.New("pdf export disabled")

// DefaultTimeout bounds a single render.
const DefaultTimeout = 30 * time.Second

// Renderer converts an HTML document to PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Disabled is a Renderer that always fails. Callers fall back to the HTML preview.
type Disabled struct{}

// Render returns ErrDisabled.
func (Disabled) Render(context.Context, string) ([]byte, error) { return nil, ErrDisabled }

// Chromium launches a headless browser per render.
type Chromium struct {
	// Bin is the browser executable. Empty means look it up on PATH.
	Bin     string
	Timeout time.Duration
}

// Render prints html to PDF with backgrounds and CSS page size honoured.
// PRE: html is a complete document
// POST: Returns PDF bytes or an error; never blocks longer than Timeout
func (c Chromium) Render(ctx context.Context, html string) ([]byte, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	launch := launcher.New().Context(ctx).Headless(true).NoSandbox(true)
	if c.Bin != "" {
		launch = launch.Bin(c.Bin)
	} else if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	return data, nil
}
