package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// ErrContentTimeout is returned by WaitForContent when the page did not become ready in time.
var ErrContentTimeout = errors.New("content readiness timed out")

// BrowserOptions configures a headless browser and the tabs it opens.
type BrowserOptions struct {
	// Restricted selects the constrained binary and sandbox-less single-process flags.
	Restricted        bool
	Bin               string
	MountID           string
	NavigationTimeout time.Duration
	ReadinessTimeout  time.Duration
	NetworkIdle       time.Duration
	MinTextLength     int
}

// BrowserLauncher starts a headless browser.
type BrowserLauncher interface {
	Launch(ctx context.Context, opts BrowserOptions) (Browser, error)
}

// Browser is a running headless browser.
type Browser interface {
	NewTab(ctx context.Context) (BrowserTab, error)
	// Close terminates the browser process.
	Close() error
}

// BrowserTab is a single page of a Browser.
type BrowserTab interface {
	// Navigate loads url and waits for the network to go idle.
	Navigate(ctx context.Context, url string) error
	// WaitForContent waits for the mount point to be filled. ErrContentTimeout
	// reports that the readiness timeout elapsed.
	WaitForContent(ctx context.Context) error
	// Document serializes the doctype and the document element.
	Document(ctx context.Context) (string, error)
	Close() error
}

const (
	readinessJS = `(id, minText) => {
		const root = document.getElementById(id);
		return !!root && root.children.length > 0 && root.innerText.length > minText;
	}`

	documentJS = `() => {
		const dt = document.doctype;
		const head = dt ? new XMLSerializer().serializeToString(dt) + "\n" : "";
		return head + document.documentElement.outerHTML;
	}`
)

// RodLauncher launches Chromium through go-rod.
type RodLauncher struct{}

// NewRodLauncher constructs a RodLauncher.
func NewRodLauncher() *RodLauncher {
	return &RodLauncher{}
}

// Launch starts a browser process and connects to it.
func (r *RodLauncher) Launch(ctx context.Context, opts BrowserOptions) (Browser, error) {
	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true).
		Set(flags.Flag("disable-setuid-sandbox"))

	if opts.Restricted {
		if opts.Bin == "" {
			return nil, errors.New("restricted environment requires an explicit browser binary")
		}

		l = l.Set("single-process").Set("no-zygote").Set("disable-gpu").Set("disable-dev-shm-usage")
	}

	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()

		return nil, fmt.Errorf("connect to chromium: %w", err)
	}

	return &rodBrowser{browser: browser, launcher: l, opts: opts}, nil
}

type rodBrowser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	opts     BrowserOptions
}

func (b *rodBrowser) NewTab(ctx context.Context) (BrowserTab, error) {
	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}

	return &rodTab{page: page, opts: b.opts}, nil
}

func (b *rodBrowser) Close() error {
	err := b.browser.Close()

	b.launcher.Kill()
	b.launcher.Cleanup()

	return err
}

type rodTab struct {
	page *rod.Page
	opts BrowserOptions
}

func (t *rodTab) Navigate(ctx context.Context, url string) error {
	page := t.page.Context(ctx).Timeout(t.opts.NavigationTimeout)
	defer page.CancelTimeout()

	waitIdle := page.WaitRequestIdle(t.opts.NetworkIdle, nil, nil, nil)

	if err := page.Navigate(url); err != nil {
		return err
	}

	waitIdle()

	return page.WaitLoad()
}

func (t *rodTab) WaitForContent(ctx context.Context) error {
	page := t.page.Context(ctx).Timeout(t.opts.ReadinessTimeout)
	defer page.CancelTimeout()

	err := page.Wait(rod.Eval(readinessJS, t.opts.MountID, t.opts.MinTextLength))
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return ErrContentTimeout
	}

	return err
}

func (t *rodTab) Document(ctx context.Context) (string, error) {
	res, err := t.page.Context(ctx).Evaluate(rod.Eval(documentJS))
	if err != nil {
		return "", err
	}

	return res.Value.Str(), nil
}

func (t *rodTab) Close() error {
	return t.page.Close()
}
