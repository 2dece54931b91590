package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OliveiraNt/xgserver/internal/application"
	"github.com/OliveiraNt/xgserver/internal/config"
	"github.com/OliveiraNt/xgserver/internal/core"
	"github.com/OliveiraNt/xgserver/internal/testutil"
	"github.com/OliveiraNt/xgserver/internal/utils"
	"github.com/stretchr/testify/require"
)

const testIndexTemplate = `<h1>{[@lang:/index/heading]}</h1><p>{[lang]}</p><p>{[query/q]}</p><p>{[@conf:/server/port]}</p>`

// buildServer builds a Server backed by an in-memory page repository.
func buildServer(t *testing.T) (*Server, *testutil.FakePageRepository) {
	t.Helper()
	utils.InitLogger()

	cfg := config.Default()
	cfg.Server.PublicDir = t.TempDir()
	cfg.Tree = map[string]any{"server": map[string]any{"port": "8080"}}
	require.NoError(t, config.InitI18n(cfg.Lang))

	repo := testutil.NewFakePageRepository()
	repo.Put("index", testIndexTemplate)

	svc := application.NewPageService(repo, core.NewStaticPage(), cfg)
	s, err := New(svc, cfg)
	require.NoError(t, err)
	return s, repo
}

// serve runs req through the full router.
func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
