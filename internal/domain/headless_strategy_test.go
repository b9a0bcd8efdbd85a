package domain

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"smashers.dev/pkg/sitegen/internal/adapter"
	m "smashers.dev/pkg/sitegen/internal/model"
)

// fakeBrowser fetches pages from the static server over HTTP and fills the
// mount point itself, standing in for a real Chromium.
type fakeBrowser struct {
	mu         sync.Mutex
	failRoute  string
	timeoutAll bool
	openTabs   int
	tabsOpened int
	closed     bool
	visited    []string
}

func (b *fakeBrowser) Launch(context.Context, adapter.BrowserOptions) (adapter.Browser, error) {
	return b, nil
}

func (b *fakeBrowser) NewTab(context.Context) (adapter.BrowserTab, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.openTabs++
	b.tabsOpened++

	return &fakeTab{browser: b}, nil
}

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true

	return nil
}

type fakeTab struct {
	browser *fakeBrowser
	body    string
	url     string
}

func (t *fakeTab) Navigate(ctx context.Context, url string) error {
	t.browser.mu.Lock()
	t.browser.visited = append(t.browser.visited, url)
	fail := t.browser.failRoute != "" && strings.HasSuffix(url, t.browser.failRoute)
	t.browser.mu.Unlock()

	if fail {
		return errors.New("net::ERR_ABORTED")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.body = string(body)
	t.url = url

	return nil
}

func (t *fakeTab) WaitForContent(context.Context) error {
	if t.browser.timeoutAll {
		return adapter.ErrContentTimeout
	}

	return nil
}

func (t *fakeTab) Document(context.Context) (string, error) {
	if t.browser.timeoutAll {
		return t.body, nil
	}

	return SpliceMount([]byte(t.body), "root", `<main data-url="`+t.url+`">hydrated</main>`)
}

func (t *fakeTab) Close() error {
	t.browser.mu.Lock()
	defer t.browser.mu.Unlock()

	t.browser.openTabs--

	return nil
}

type trackingServer struct {
	adapter.StaticServer

	baseURL string
	closed  bool
}

func (s *trackingServer) Start(ctx context.Context) (string, error) {
	baseURL, err := s.StaticServer.Start(ctx)
	s.baseURL = baseURL

	return baseURL, err
}

func (s *trackingServer) Close(ctx context.Context) error {
	s.closed = true
	return s.StaticServer.Close(ctx)
}

func newHeadlessGenerator(browser *fakeBrowser, server **trackingServer) Generator {
	fsAdapter := adapter.NewLocalSiteFSAdapter()
	ui, _ := newTestUI()

	factory := func(opts adapter.StaticServerOptions) adapter.StaticServer {
		*server = &trackingServer{StaticServer: adapter.NewLocalStaticServer(opts)}
		return *server
	}

	return NewGenerator(fsAdapter, adapter.NewLocalManifestStore(), ui,
		NewHeadlessStrategy(fsAdapter, browser, factory))
}

func TestHeadless_GeneratesRoutes(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dist := newDist(t)
	browser := &fakeBrowser{}

	var server *trackingServer

	summary, err := newHeadlessGenerator(browser, &server).Generate(context.Background(), GenerateArgs{
		Strategy: m.StrategyHeadless,
		Routes:   []string{"/", "/faq"},
		OutDir:   dist,
		Verify:   true,
	})
	require.NoError(t, err)
	require.Len(t, summary.Routes, 2)

	faq := parseDocument(t, readOutput(t, m.Path(filepath.Join(string(dist), "faq", "index.html"))))
	assert.Equal(t, server.baseURL+"/faq", faq.Find("#root main").AttrOr("data-url", ""))

	assert.True(t, browser.closed)
	assert.True(t, server.closed)
	assert.Zero(t, browser.openTabs)
	assert.Equal(t, 2, browser.tabsOpened)
}

func TestHeadless_NavigationFailureCleansUp(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dist := newDist(t)
	browser := &fakeBrowser{failRoute: "/schedule"}

	var server *trackingServer

	summary, err := newHeadlessGenerator(browser, &server).Generate(context.Background(), GenerateArgs{
		Strategy: m.StrategyHeadless,
		Routes:   []string{"/training", "/schedule", "/faq"},
		OutDir:   dist,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "ERR_ABORTED")
	assert.Equal(t, m.Failed, summary.State)

	assert.True(t, browser.closed)
	assert.True(t, server.closed)
	assert.Zero(t, browser.openTabs)
	assert.Len(t, browser.visited, 2)

	_, err = os.Stat(filepath.Join(string(dist), "training", "index.html"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(string(dist), "schedule", "index.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = http.Get(server.baseURL + "/") //nolint:noctx
	require.Error(t, err)
}

func TestHeadless_ReadinessTimeoutIsNotFatal(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dist := newDist(t)
	browser := &fakeBrowser{timeoutAll: true}

	var server *trackingServer

	summary, err := newHeadlessGenerator(browser, &server).Generate(context.Background(), GenerateArgs{
		Strategy: m.StrategyHeadless,
		Routes:   []string{"/contacts"},
		OutDir:   dist,
	})
	require.NoError(t, err)
	require.Len(t, summary.Routes, 1)
	assert.True(t, browser.closed)
}

func TestHeadless_BuildDirMissing(t *testing.T) {
	browser := &fakeBrowser{}

	var server *trackingServer

	_, err := newHeadlessGenerator(browser, &server).Generate(context.Background(), GenerateArgs{
		Strategy: m.StrategyHeadless,
		OutDir:   m.Path(filepath.Join(t.TempDir(), "dist")),
	})

	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)
	require.ErrorIs(t, err, ErrBuildDirMissing)
	assert.Nil(t, server)
	assert.Zero(t, browser.tabsOpened)
}

type failingLauncher struct{}

func (failingLauncher) Launch(context.Context, adapter.BrowserOptions) (adapter.Browser, error) {
	return nil, errors.New("chromium not found")
}

func TestHeadless_LaunchFailureStopsServer(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fsAdapter := adapter.NewLocalSiteFSAdapter()
	ui, _ := newTestUI()

	var server *trackingServer

	factory := func(opts adapter.StaticServerOptions) adapter.StaticServer {
		server = &trackingServer{StaticServer: adapter.NewLocalStaticServer(opts)}
		return server
	}

	generator := NewGenerator(fsAdapter, adapter.NewLocalManifestStore(), ui,
		NewHeadlessStrategy(fsAdapter, failingLauncher{}, factory))

	_, err := generator.Generate(context.Background(), GenerateArgs{
		Strategy: m.StrategyHeadless,
		OutDir:   newDist(t),
	})
	require.ErrorContains(t, err, "chromium not found")
	require.NotNil(t, server)
	assert.True(t, server.closed)
}
