// Package mid provides HTTP middleware for xgserver: locale selection,
// request logging and Prometheus request metrics.
package mid

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/OliveiraNt/xgserver/internal/config"
	"github.com/OliveiraNt/xgserver/internal/utils"
	"github.com/invopop/ctxi18n"
)

const langCookie = "lang"

// I18n is middleware that sets the request context with a locale based on
// cookies, query parameters, or the Accept-Language header. Only languages
// listed in cfg are honoured; anything else gets the default language.
func I18n(cfg config.LangConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var candidates []string

			if c, err := r.Cookie(langCookie); err == nil {
				candidates = append(candidates, c.Value)
			}
			candidates = append(candidates, r.URL.Query().Get("lang"))
			candidates = append(candidates, acceptLanguages(r.Header.Get("Accept-Language"))...)

			lang := pickLanguage(cfg, candidates)
			ctx, err := ctxi18n.WithLocale(r.Context(), lang)
			if err != nil {
				utils.Logger.Error("failed to set locale", "lang", lang, "err", err)
				ctx = r.Context()
			}

			if r.URL.Query().Has("lang") {
				http.SetCookie(w, &http.Cookie{
					Name:     langCookie,
					Value:    lang,
					Path:     "/",
					HttpOnly: false,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Language returns the locale code carried by ctx.
func Language(ctx context.Context) string {
	if l := ctxi18n.Locale(ctx); l != nil {
		return l.Code().String()
	}
	return config.DefaultLanguage
}

func pickLanguage(cfg config.LangConfig, candidates []string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if cfg.IsAvailable(c) {
			return c
		}
		// ru-RU -> ru
		if base, _, ok := strings.Cut(c, "-"); ok && cfg.IsAvailable(base) {
			return base
		}
	}
	return cfg.DefaultLanguage()
}

// acceptLanguages returns the tags of an Accept-Language header in order,
// ignoring quality values.
func acceptLanguages(header string) []string {
	if header == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if tag = strings.TrimSpace(tag); tag != "" && tag != "*" {
			out = append(out, tag)
		}
	}
	return out
}
