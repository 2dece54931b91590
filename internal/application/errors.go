package application

import "errors"

var (
	// ErrPageNotFound is returned when no template page has the requested name
	ErrPageNotFound = errors.New("page not found")

	// ErrInvalidPageName is returned for names that could escape the template directory
	ErrInvalidPageName = errors.New("invalid page name")
)
