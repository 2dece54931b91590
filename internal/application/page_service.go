// Package application implements the use cases of xgserver on top of the
// domain repositories.
package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/OliveiraNt/xgserver/internal/core"
	"github.com/OliveiraNt/xgserver/internal/domain"
	"github.com/OliveiraNt/xgserver/internal/utils"
)

// PageService renders the landing page and private template pages.
type PageService struct {
	repo   domain.PageRepository
	static *core.StaticPage
	conf   core.ConfigLookup
}

// NewPageService creates a new page service. conf backs {[@conf:...]} macros and may be nil.
func NewPageService(repo domain.PageRepository, static *core.StaticPage, conf core.ConfigLookup) *PageService {
	if static == nil {
		static = core.NewStaticPage()
	}
	return &PageService{repo: repo, static: static, conf: conf}
}

// StaticPage returns the landing page.
func (s *PageService) StaticPage() *core.StaticPage {
	return s.static
}

// ListPages lists the names of the loaded template pages.
func (s *PageService) ListPages() []string {
	return s.repo.Names()
}

// RenderPage expands the named template with binds and the locale in ctx.
func (s *PageService) RenderPage(ctx context.Context, name string, binds core.Binds) ([]byte, error) {
	if !validPageName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPageName, name)
	}
	page, ok := s.repo.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, name)
	}

	tpl := core.NewTemplate(page.Source, s.conf)
	tpl.Binds().Merge(binds)
	out := tpl.Parse(ctx)
	utils.Logger.Debug("page rendered", "page", name, "bytes", len(out))
	return out, nil
}

// Subscribe returns a feed of page names that changed on disk.
func (s *PageService) Subscribe() (<-chan string, func()) {
	return s.repo.Subscribe()
}

func validPageName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
