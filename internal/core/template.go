package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/invopop/ctxi18n/i18n"
)

// maxMacroLen bounds the expression inside a single macro.
const maxMacroLen = 255

var (
	macroOpen  = []byte("{[")
	macroClose = []byte("]}")
)

// ConfigLookup resolves "@conf:" macros.
type ConfigLookup interface {
	Lookup(path string) (any, bool)
}

// Template expands macros of the form {[expr]} in a source document.
//
//	{[name]}, {[/user/name]}  value bound with Bind
//	{[@lang:/menu/title]}     string from the locale carried by ctx
//	{[@conf:/server/port]}    value from the configuration tree
//
// Unknown values expand to nothing. Maps and slices are written as JSON.
type Template struct {
	src   []byte
	binds Binds
	conf  ConfigLookup
}

// NewTemplate creates a template over src. conf may be nil.
func NewTemplate(src []byte, conf ConfigLookup) *Template {
	return &Template{src: src, binds: Binds{}, conf: conf}
}

// Bind sets a template variable.
func (t *Template) Bind(path string, value any) *Template {
	t.binds.Set(path, value)
	return t
}

// BindTime sets a template variable to t formatted with layout.
func (t *Template) BindTime(path string, tm time.Time, layout string) *Template {
	t.binds.SetTime(path, tm, layout)
	return t
}

// Binds returns the variable tree.
func (t *Template) Binds() Binds {
	return t.binds
}

// Parse expands every macro and returns the resulting document.
// An unterminated macro is copied through untouched.
func (t *Template) Parse(ctx context.Context) []byte {
	var buf bytes.Buffer
	buf.Grow(len(t.src))
	src := t.src
	for {
		i := bytes.Index(src, macroOpen)
		if i < 0 {
			buf.Write(src)
			break
		}
		buf.Write(src[:i])
		rest := src[i+len(macroOpen):]
		j := bytes.Index(rest, macroClose)
		if j < 0 {
			buf.Write(src[i:])
			break
		}
		t.expand(ctx, &buf, string(rest[:j]))
		src = rest[j+len(macroClose):]
	}
	return buf.Bytes()
}

func (t *Template) expand(ctx context.Context, buf *bytes.Buffer, expr string) {
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "@") {
		if !validExpr(expr) {
			return
		}
		if v, ok := t.binds.Get(expr); ok {
			buf.WriteString(FormatValue(v))
		}
		return
	}

	fn := strings.TrimSpace(expr[1:])
	switch {
	case hasPrefixFold(fn, "lang:"):
		key := strings.TrimSpace(fn[len("lang:"):])
		if validExpr(key) {
			buf.WriteString(translate(ctx, key))
		}
	case hasPrefixFold(fn, "conf:"):
		path := strings.TrimSpace(fn[len("conf:"):])
		if !validExpr(path) || t.conf == nil {
			return
		}
		if v, ok := t.conf.Lookup(path); ok {
			buf.WriteString(FormatValue(v))
		}
	}
}

func validExpr(s string) bool {
	return s != "" && len(s) <= maxMacroLen
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// translate maps a slash path such as /menu/title onto the dotted key used
// by the locale files.
func translate(ctx context.Context, path string) string {
	key := strings.Join(splitPath(path), ".")
	if key == "" || !i18n.Has(ctx, key) {
		return ""
	}
	return i18n.T(ctx, key)
}

// FormatValue renders a bound value as template text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	case Binds, map[string]any, []any, []string:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
