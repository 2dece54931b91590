// Package domain defines the entities and repository abstractions of xgserver:
// private template pages and the store that serves them.
package domain

import "time"

// TemplateExt is the file extension of private template pages.
const TemplateExt = ".tpl"

// Page is a private template loaded from disk or from the embedded defaults.
type Page struct {
	Name    string    `json:"name"`
	Source  []byte    `json:"-"`
	ModTime time.Time `json:"mod_time"`
}

// PageRepository provides access to the loaded template pages.
type PageRepository interface {
	Load() error
	FindByName(name string) (Page, bool)
	Names() []string
	Watch() error
	Subscribe() (<-chan string, func())
	Close() error
}
