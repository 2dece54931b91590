package core

import (
	"strconv"
	"strings"
	"time"
)

// Binds is a tree of template values addressed by slash separated paths,
// e.g. "user/name" or "/user/name".
type Binds map[string]any

// splitPath drops empty segments so "/a//b/" and "a/b" address the same node.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Set stores value at path, creating intermediate nodes. Existing scalar
// nodes on the way are replaced. It reports false for an empty path.
func (b Binds) Set(path string, value any) bool {
	parts := splitPath(path)
	if len(parts) == 0 || b == nil {
		return false
	}
	node := b
	for _, p := range parts[:len(parts)-1] {
		next, ok := asMap(node[p])
		if !ok {
			next = Binds{}
			node[p] = next
		}
		node = next
	}
	node[parts[len(parts)-1]] = value
	return true
}

// SetTime stores t formatted with layout. An empty layout means RFC 3339.
func (b Binds) SetTime(path string, t time.Time, layout string) bool {
	if layout == "" {
		layout = time.RFC3339
	}
	return b.Set(path, t.Format(layout))
}

// Get resolves path against the tree. Numeric segments index into slices.
func (b Binds) Get(path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}
	var cur any = b
	for _, p := range parts {
		switch node := cur.(type) {
		case Binds:
			v, ok := node[p]
			if !ok {
				return nil, false
			}
			cur = v
		case map[string]any:
			v, ok := node[p]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(p)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Merge copies every top-level entry of other into b.
func (b Binds) Merge(other Binds) {
	for k, v := range other {
		b[k] = v
	}
}

func asMap(v any) (Binds, bool) {
	switch m := v.(type) {
	case Binds:
		return m, true
	case map[string]any:
		return Binds(m), true
	}
	return nil, false
}
