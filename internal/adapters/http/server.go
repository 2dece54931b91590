// Package httpserver exposes xgserver over HTTP: the landing page, private
// template pages, public static files, live reload and metrics.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/OliveiraNt/xgserver/internal/adapters/http/mid"
	"github.com/OliveiraNt/xgserver/internal/application"
	"github.com/OliveiraNt/xgserver/internal/config"
	"github.com/OliveiraNt/xgserver/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Server provides the HTTP endpoints of xgserver.
type Server struct {
	pageService *application.PageService
	cfg         config.FileConfig
	registry    *prometheus.Registry
	metrics     *mid.Metrics
}

// New creates a new HTTP server instance with its own metrics registry.
func New(pageService *application.PageService, cfg config.FileConfig) (*Server, error) {
	reg := prometheus.NewRegistry()
	metrics, err := mid.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	return &Server{
		pageService: pageService,
		cfg:         cfg,
		registry:    reg,
		metrics:     metrics,
	}, nil
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mid.RequestLogger)
	r.Use(s.metrics.Handler)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(mid.I18n(s.cfg.Lang))

	r.Handle("/static/*", http.StripPrefix("/static/", StaticWithCache(s.cfg.Server.PublicDir, s.cfg.Server.StaticMaxAge)))

	r.Get("/lang", s.changeLanguage)

	r.Get("/", s.uiStaticPage)
	r.Get("/menu", s.uiStaticPage)
	r.Get("/index", s.uiIndex)
	r.Get("/pages", s.apiListPages)
	r.Get("/pages/{pageName}", s.uiTemplatePage)

	r.Get("/ws/reload", s.wsReload)
	r.Get("/healthz", healthz)
	r.Method(http.MethodGet, mid.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// Run starts the HTTP server on the given address and shuts it down when ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		utils.Logger.Info("HTTP server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// StaticWithCache serves static files from dir applying a public max-age cache header.
func StaticWithCache(dir string, maxAge time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dir == "" {
			http.NotFound(w, r)
			return
		}
		// rooting the path before Clean keeps ".." inside dir
		fullPath := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))

		http.ServeFile(w, r, fullPath)
	}
}

// changeLanguage changes the language preference via a query parameter and sets a cookie.
func (s *Server) changeLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "lang",
		Value:    s.cfg.Lang.Select(lang),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   31536000,
	})

	http.Redirect(w, r, localReferer(r), http.StatusSeeOther)
}

// localReferer returns the path of the Referer header, never another host.
func localReferer(r *http.Request) string {
	ref, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
