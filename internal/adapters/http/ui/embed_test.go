package ui

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	src, err := fs.ReadFile(Templates(), "index.tpl")
	require.NoError(t, err)
	require.Contains(t, string(src), "{[@lang:/index/heading]}")
}
