package repository

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/OliveiraNt/xgserver/internal/utils"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
}

func TestLoadFindNames(t *testing.T) {
	utils.InitLogger()
	dir := t.TempDir()
	writeTemplate(t, dir, "index.tpl", "<h1>{[@lang:/index/heading]}</h1>")
	writeTemplate(t, dir, "about.tpl", "about")
	writeTemplate(t, dir, "notes.txt", "ignored")
	writeTemplate(t, dir, ".hidden.tpl", "ignored")

	repo := NewPageRepository(dir, nil)
	require.NoError(t, repo.Load())

	require.Equal(t, []string{"about", "index"}, repo.Names())

	p, ok := repo.FindByName("index")
	require.True(t, ok)
	require.Equal(t, "index", p.Name)
	require.Equal(t, "<h1>{[@lang:/index/heading]}</h1>", string(p.Source))
	require.False(t, p.ModTime.IsZero())

	_, ok = repo.FindByName("notes")
	require.False(t, ok)
}

func TestLoadFallback(t *testing.T) {
	utils.InitLogger()
	fallback := fstest.MapFS{
		"index.tpl": {Data: []byte("embedded")},
	}
	repo := NewPageRepository(filepath.Join(t.TempDir(), "missing"), fallback)
	require.NoError(t, repo.Load())

	p, ok := repo.FindByName("index")
	require.True(t, ok)
	require.Equal(t, "embedded", string(p.Source))

	// nothing to watch for embedded pages
	require.NoError(t, repo.Watch())
	require.NoError(t, repo.Close())
}

func TestLoadMissingDirWithoutFallback(t *testing.T) {
	utils.InitLogger()
	repo := NewPageRepository(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, repo.Load())
}

func TestWatchReloadsAndNotifies(t *testing.T) {
	utils.InitLogger()
	dir := t.TempDir()
	writeTemplate(t, dir, "index.tpl", "v1")

	repo := NewPageRepository(dir, nil)
	require.NoError(t, repo.Load())
	require.NoError(t, repo.Watch())
	defer repo.Close()

	updates, unsubscribe := repo.Subscribe()
	defer unsubscribe()

	writeTemplate(t, dir, "index.tpl", "v2")

	select {
	case name := <-updates:
		require.Equal(t, "index", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload notification")
	}
	require.Eventually(t, func() bool {
		p, ok := repo.FindByName("index")
		return ok && string(p.Source) == "v2"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestSubscribeUnsubscribeAndClose(t *testing.T) {
	utils.InitLogger()
	repo := NewPageRepository(t.TempDir(), nil)

	ch1, cancel1 := repo.Subscribe()
	ch2, _ := repo.Subscribe()

	repo.publish("index")
	require.Equal(t, "index", <-ch1)
	require.Equal(t, "index", <-ch2)

	cancel1()
	cancel1()
	_, ok := <-ch1
	require.False(t, ok)

	require.NoError(t, repo.Close())
	_, ok = <-ch2
	require.False(t, ok)

	// subscribing after close yields a closed channel
	ch3, _ := repo.Subscribe()
	_, ok = <-ch3
	require.False(t, ok)
}

func TestPublishDoesNotBlock(t *testing.T) {
	utils.InitLogger()
	repo := NewPageRepository(t.TempDir(), nil)
	ch, cancel := repo.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		repo.publish("index")
	}
	require.Len(t, ch, subscriberBuffer)
}

func TestPageName(t *testing.T) {
	tests := []struct {
		file string
		name string
		ok   bool
	}{
		{"index.tpl", "index", true},
		{"/srv/private/about.tpl", "about", true},
		{"style.css", "", false},
		{".index.tpl", "", false},
		{".tpl", "", false},
	}
	for _, tt := range tests {
		name, ok := pageName(tt.file)
		require.Equal(t, tt.ok, ok, tt.file)
		require.Equal(t, tt.name, name, tt.file)
	}
}
