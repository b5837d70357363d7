// Package printer prints assembled HTML pages to PDF with headless Chrome.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-mdprint/internal/fileutil"
	"github.com/alnah/go-mdprint/internal/process"
)

// Sentinel errors for PDF printing.
var (
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)

// DefaultTimeout bounds page loading when the context has no deadline.
const DefaultTimeout = 30 * time.Second

// FileRenderer renders a local HTML file to PDF bytes.
type FileRenderer interface {
	RenderFromFile(ctx context.Context, path string) ([]byte, error)
	Close() error
}

var _ FileRenderer = (*RodRenderer)(nil)

// Printer writes pages to a temporary file and renders them. The page must be
// loaded from disk so relative and file:// references resolve.
type Printer struct {
	renderer FileRenderer
	log      *zap.Logger
}

// Option configures a Printer.
type Option func(*Printer)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Printer) {
		if log != nil {
			p.log = log
		}
	}
}

// WithRenderer replaces the headless Chrome renderer.
func WithRenderer(r FileRenderer) Option {
	return func(p *Printer) {
		if r != nil {
			p.renderer = r
		}
	}
}

// New creates a Printer. The browser is not started until the first page is
// printed.
func New(timeout time.Duration, opts ...Option) *Printer {
	p := &Printer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.Named("printer")
	if p.renderer == nil {
		p.renderer = NewRodRenderer(timeout, p.log)
	}
	return p
}

// PrintPDF renders a complete HTML page to PDF.
func (p *Printer) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	start := time.Now()
	pdf, err := p.renderer.RenderFromFile(ctx, path)
	if err != nil {
		return nil, err
	}
	p.log.Debug("Printed page", zap.Int("bytes", len(pdf)), zap.Duration("elapsed", time.Since(start)))
	return pdf, nil
}

// Close releases the browser.
func (p *Printer) Close() error {
	return p.renderer.Close()
}

// RodRenderer drives headless Chrome through go-rod. Rod downloads Chromium
// on first use when no browser is installed.
type RodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout time.Duration
	log     *zap.Logger
}

// NewRodRenderer creates a RodRenderer. A zero timeout selects
// DefaultTimeout.
func NewRodRenderer(timeout time.Duration, log *zap.Logger) *RodRenderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RodRenderer{timeout: timeout, log: log}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *RodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Pre-installed browser (containers).
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// Sandboxing is unavailable in CI and most containers.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		stopBrowser(l)
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.log.Debug("Browser connected", zap.String("url", u), zap.Int("pid", l.PID()))
	r.browser = browser
	r.launcher = l
	return browser, nil
}

// Close releases browser resources.
func (r *RodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	stopBrowser(r.launcher)
	r.browser = nil
	r.launcher = nil
	return err
}

// stopBrowser kills Chrome and its helper processes, then removes the
// launcher's temporary profile.
func stopBrowser(l *launcher.Launcher) {
	if l == nil {
		return
	}
	if pid := l.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	l.Kill()
	l.Cleanup()
}

// RenderFromFile opens path in a new tab and prints it. Page size and margins
// come from the page's own @page rules.
func (r *RodRenderer) RenderFromFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: fileURL(path)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.Context(ctx).PDF(printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

func printOptions() *proto.PagePrintToPDF {
	zero := 0.0
	return &proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		MarginTop:         &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		MarginRight:       &zero,
	}
}

func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String()
}
