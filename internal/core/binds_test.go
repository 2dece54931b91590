package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBinds_SetGet(t *testing.T) {
	b := Binds{}
	require.True(t, b.Set("/user/name", "ann"))
	require.True(t, b.Set("user/id", 7))
	require.False(t, b.Set("//", "x"))

	v, ok := b.Get("user/name")
	require.True(t, ok)
	require.Equal(t, "ann", v)

	v, ok = b.Get("/user//id/")
	require.True(t, ok)
	require.Equal(t, 7, v)

	_, ok = b.Get("user/missing")
	require.False(t, ok)
	_, ok = b.Get("")
	require.False(t, ok)
}

func TestBinds_SetReplacesScalar(t *testing.T) {
	b := Binds{}
	b.Set("a", 1)
	b.Set("a/b", 2)
	v, ok := b.Get("a/b")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestBinds_GetPlainMapsAndSlices(t *testing.T) {
	b := Binds{
		"server": map[string]any{
			"hosts": []any{"a.local", "b.local"},
		},
	}
	v, ok := b.Get("server/hosts/1")
	require.True(t, ok)
	require.Equal(t, "b.local", v)

	_, ok = b.Get("server/hosts/2")
	require.False(t, ok)
	_, ok = b.Get("server/hosts/x")
	require.False(t, ok)

	// writes go through plain maps too
	b.Set("server/port", 80)
	v, ok = b.Get("server/port")
	require.True(t, ok)
	require.Equal(t, 80, v)
}

func TestBinds_SetTime(t *testing.T) {
	b := Binds{}
	ts := time.Date(2015, 3, 1, 10, 30, 0, 0, time.UTC)
	b.SetTime("now", ts, "")
	b.SetTime("day", ts, "2006-01-02")

	v, _ := b.Get("now")
	require.Equal(t, "2015-03-01T10:30:00Z", v)
	v, _ = b.Get("day")
	require.Equal(t, "2015-03-01", v)
}
