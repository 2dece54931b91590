package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"io"

	"github.com/a-h/templ"
)

// StaticPageTitle is the <title> of the landing page.
const StaticPageTitle = "XG Server static page"

// MenuLabels lists the landing page menu items in display order.
var MenuLabels = [...]string{"Welcome", "To", "XGServer", "Static", "Page!"}

//go:embed static_page.html
var staticPageHTML []byte

// StaticPage is the fixed landing document. It has no inputs and never changes
// after construction, so a single instance is shared by all requests.
type StaticPage struct {
	doc  []byte
	etag string
}

// NewStaticPage returns the landing page.
func NewStaticPage() *StaticPage {
	sum := sha256.Sum256(staticPageHTML)
	return &StaticPage{
		doc:  staticPageHTML,
		etag: `"` + hex.EncodeToString(sum[:16]) + `"`,
	}
}

// Render returns a copy of the document bytes.
func (p *StaticPage) Render() []byte {
	return bytes.Clone(p.doc)
}

// ETag returns a strong entity tag for the document.
func (p *StaticPage) ETag() string {
	return p.etag
}

// Component exposes the page as a templ component.
func (p *StaticPage) Component() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := w.Write(p.doc)
		return err
	})
}
