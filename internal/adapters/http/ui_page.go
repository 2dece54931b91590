package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/OliveiraNt/xgserver/internal/adapters/http/mid"
	"github.com/OliveiraNt/xgserver/internal/application"
	"github.com/OliveiraNt/xgserver/internal/core"
	"github.com/OliveiraNt/xgserver/internal/utils"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// indexPage is rendered for /index.
const indexPage = "index"

func (s *Server) uiStaticPage(w http.ResponseWriter, r *http.Request) {
	page := s.pageService.StaticPage()
	etag := page.ETag()
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	if err := page.Component().Render(r.Context(), w); err != nil {
		utils.Logger.Error("render static page failed", "err", err)
		return
	}
	s.metrics.PageRendered("static")
}

func (s *Server) uiIndex(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, r, indexPage)
}

func (s *Server) uiTemplatePage(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, r, chi.URLParam(r, "pageName"))
}

func (s *Server) renderTemplate(w http.ResponseWriter, r *http.Request, name string) {
	utils.Logger.Debug("render page", "page", name)
	body, err := s.pageService.RenderPage(r.Context(), name, requestBinds(r))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidPageName):
			utils.Logger.Warn("render page bad request", "page", name, "err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, application.ErrPageNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			utils.Logger.Error("render page failed", "page", name, "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(body); err != nil {
		utils.Logger.Error("write page failed", "page", name, "err", err)
		return
	}
	s.metrics.PageRendered(name)
}

// requestBinds exposes request data to templates. Query values are HTML
// escaped because templates insert values verbatim.
func requestBinds(r *http.Request) core.Binds {
	binds := core.Binds{}
	binds.Set("path", r.URL.Path)
	binds.Set("lang", mid.Language(r.Context()))
	binds.Set("request_id", middleware.GetReqID(r.Context()))
	binds.SetTime("server/time", time.Now(), time.RFC1123)
	query := core.Binds{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			query[k] = templ.EscapeString(v[0])
		}
	}
	binds["query"] = query
	return binds
}

func (s *Server) apiListPages(w http.ResponseWriter, _ *http.Request) {
	pages := s.pageService.ListPages()
	utils.Logger.Debug("api list pages", "count", len(pages))
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(pages); err != nil {
		utils.Logger.Error("encode pages failed", "err", err)
	}
}
