// Package locales provides the embedded translation files (en, ru) used by
// {[@lang:...]} template macros.
package locales

import "embed"

//go:embed en.yaml
//go:embed ru.yaml

// Content is an embedded file system containing the locale files.
var Content embed.FS
