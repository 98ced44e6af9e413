package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ic-it/blogkit"
	"github.com/ic-it/blogkit/internal/config"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// runServeCmd parses serve flags and serves the site until ctx is done.
func runServeCmd(ctx context.Context, args []string, env *Environment) error {
	var flags serveFlags
	fs := newFlagSet("serve", printServeUsage, env.Stderr)
	addCommonFlags(fs, &flags.common)
	fs.StringVar(&flags.addr, "addr", "", "listen address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		printServeUsage(env.Stderr)
		return fmt.Errorf("%w: serve takes no arguments", ErrUsage)
	}
	return runServe(ctx, &flags, env)
}

// runServe listens on the configured address and shuts down gracefully
// when ctx is canceled.
func runServe(ctx context.Context, flags *serveFlags, env *Environment) error {
	s, err := openSite(ctx, &flags.common, env, func(cfg *config.Config) {
		if flags.addr != "" {
			cfg.Server.Addr = flags.addr
		}
	})
	if err != nil {
		return err
	}
	coll, err := newCollection(s.cfg)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Server.Addr, err)
	}

	srv := &http.Server{
		Handler:           newSiteHandler(s.pub, coll, s.logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "serving %s on http://%s/\n", s.cfg.Content.Dir, ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// siteHandler serves pages, the index and the feed. Content is listed on
// every request so edits show up without a restart.
type siteHandler struct {
	pub    *blogkit.Publisher
	coll   blogkit.Collection
	logger *slog.Logger
}

// newSiteHandler returns the router for the site.
func newSiteHandler(pub *blogkit.Publisher, coll blogkit.Collection, logger *slog.Logger) http.Handler {
	h := &siteHandler{pub: pub, coll: coll, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(blogkit.FeedRoute, h.Feed)
	r.Get("/", h.Index)
	r.Get("/*", h.Page)
	return r
}

// Feed serves the RSS feed.
func (h *siteHandler) Feed(w http.ResponseWriter, r *http.Request) {
	result, err := h.pub.Feed(r.Context(), h.coll)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := result.Feed.WriteRSS(&buf); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// Index serves the listing page.
func (h *siteHandler) Index(w http.ResponseWriter, r *http.Request) {
	docs, err := h.coll.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := h.pub.WriteIndex(&buf, docs); err != nil {
		h.fail(w, r, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

// Page serves /<slug>/, redirecting /<slug> to the canonical form.
func (h *siteHandler) Page(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(chi.URLParam(r, "*"), "/")
	docs, err := h.coll.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	i := -1
	for j := range docs {
		if docs[j].Slug == slug {
			i = j
			break
		}
	}
	if i < 0 {
		http.NotFound(w, r)
		return
	}
	// Location is built from the slug, never from the request path.
	if !strings.HasSuffix(r.URL.Path, "/") {
		http.Redirect(w, r, "/"+slug+"/", http.StatusMovedPermanently)
		return
	}

	page, err := h.pub.Render(r.Context(), docs[i])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := h.pub.WritePage(&buf, page); err != nil {
		h.fail(w, r, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

// fail logs err and answers 500.
func (h *siteHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}
