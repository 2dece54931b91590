package config

import (
	"github.com/OliveiraNt/xgserver/locales"
	"github.com/invopop/ctxi18n"
	"github.com/invopop/ctxi18n/i18n"
)

// InitI18n loads the embedded locales with the configured default as fallback.
func InitI18n(lang LangConfig) error {
	return ctxi18n.LoadWithDefault(locales.Content, i18n.Code(lang.DefaultLanguage()))
}
