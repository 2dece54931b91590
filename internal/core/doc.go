// Package core holds the content served by xgserver: the fixed landing page
// and the macro template engine used for private pages.
package core
