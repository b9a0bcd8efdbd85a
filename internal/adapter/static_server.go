package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	m "smashers.dev/pkg/sitegen/internal/model"
)

const (
	defaultContentType = "application/octet-stream"
	shutdownTimeout    = 5 * time.Second
	readHeaderTimeout  = 10 * time.Second
)

var contentTypes = map[string]string{
	".html":  "text/html",
	".js":    "application/javascript",
	".css":   "text/css",
	".json":  "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff2": "font/woff2",
}

// ContentType returns the Content-Type served for name, chosen by extension only.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}

	return defaultContentType
}

// StaticServerOptions configures a static server.
type StaticServerOptions struct {
	Root m.Path
	// Addr is host:port; port 0 picks a free port.
	Addr string
	// DirIndex serves <dir>/index.html for directory requests instead of the SPA fallback.
	DirIndex bool
}

// StaticServer serves a build directory with SPA fallback.
type StaticServer interface {
	// Start binds the listener and returns the base URL, without trailing slash.
	Start(ctx context.Context) (string, error)
	Close(ctx context.Context) error
}

// StaticServerFactory creates a static server for the given options.
type StaticServerFactory func(opts StaticServerOptions) StaticServer

// LocalStaticServer is an http.Server rooted at a directory.
type LocalStaticServer struct {
	opts StaticServerOptions

	mu     sync.Mutex
	server *http.Server
	group  *errgroup.Group
}

// NewLocalStaticServer constructs a LocalStaticServer.
func NewLocalStaticServer(opts StaticServerOptions) *LocalStaticServer {
	return &LocalStaticServer{opts: opts}
}

// LocalStaticServerFactory is a StaticServerFactory producing LocalStaticServers.
func LocalStaticServerFactory(opts StaticServerOptions) StaticServer {
	return NewLocalStaticServer(opts)
}

// Handler returns the router serving the build directory.
func (s *LocalStaticServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/*", s.serveFile)
	r.Head("/*", s.serveFile)

	return r
}

// Start listens on the configured address and serves in the background.
func (s *LocalStaticServer) Start(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return "", errors.New("static server already started")
	}

	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return "", fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.group = &errgroup.Group{}

	server := s.server
	s.group.Go(func() error {
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	return "http://" + ln.Addr().String(), nil
}

// Close shuts the server down and waits for the serve loop to exit.
func (s *LocalStaticServer) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	shutdownErr := s.server.Shutdown(shutdownCtx)
	serveErr := s.group.Wait()

	s.server, s.group = nil, nil

	return errors.Join(shutdownErr, serveErr)
}

func (s *LocalStaticServer) serveFile(w http.ResponseWriter, r *http.Request) {
	urlPath := path.Clean("/" + r.URL.Path)
	file := filepath.Join(string(s.opts.Root), filepath.FromSlash(urlPath))

	info, err := os.Stat(file)
	if err == nil && info.IsDir() && s.opts.DirIndex {
		file = filepath.Join(file, "index.html")
		info, err = os.Stat(file)
	}

	if err != nil || info.IsDir() {
		s.serveFallback(w, r)
		return
	}

	s.serveContent(w, r, file, info)
}

func (s *LocalStaticServer) serveFallback(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(string(s.opts.Root), "index.html")

	info, err := os.Stat(index)
	if err != nil || info.IsDir() {
		slog.Error("SPA fallback missing", "path", index, "error", err)
		http.Error(w, "index.html not found", http.StatusInternalServerError)

		return
	}

	s.serveContent(w, r, index, info)
}

func (s *LocalStaticServer) serveContent(w http.ResponseWriter, r *http.Request, file string, info os.FileInfo) {
	f, err := os.Open(file)
	if err != nil {
		http.Error(w, "read error", http.StatusInternalServerError)
		return
	}

	defer func() {
		_ = f.Close()
	}()

	w.Header().Set("Content-Type", ContentType(file))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
