package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/OliveiraNt/xgserver/internal/domain"
	"github.com/OliveiraNt/xgserver/internal/utils"
	"github.com/fsnotify/fsnotify"
)

const (
	debounceDelay    = 350 * time.Millisecond
	subscriberBuffer = 16
)

// PageRepository keeps the private template pages in memory. Pages come from
// dir when it exists and from the fallback file system otherwise.
type PageRepository struct {
	mu       sync.RWMutex
	pages    map[string]domain.Page
	dir      string
	fallback fs.FS
	watcher  *fsnotify.Watcher

	subMu  sync.Mutex
	subs   map[int]chan string
	nextID int
	closed bool
}

// NewPageRepository creates a new page repository
func NewPageRepository(dir string, fallback fs.FS) *PageRepository {
	return &PageRepository{
		pages:    make(map[string]domain.Page),
		dir:      dir,
		fallback: fallback,
		subs:     make(map[int]chan string),
	}
}

// onDisk reports whether pages are read from the configured directory.
func (r *PageRepository) onDisk() bool {
	if r.dir == "" {
		return false
	}
	info, err := os.Stat(r.dir)
	return err == nil && info.IsDir()
}

// Load replaces the in-memory pages with the current templates.
func (r *PageRepository) Load() error {
	var fsys fs.FS
	switch {
	case r.onDisk():
		fsys = os.DirFS(r.dir)
	case r.fallback != nil:
		utils.Logger.Debug("template dir not found, using embedded pages", "dir", r.dir)
		fsys = r.fallback
	default:
		return fmt.Errorf("template dir %q not found", r.dir)
	}

	pages, err := readPages(fsys)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	utils.Logger.Info("template pages loaded", "count", len(pages))
	return nil
}

// FindByName retrieves a page by name, without extension
func (r *PageRepository) FindByName(name string) (domain.Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[name]
	return p, ok
}

// Names returns the sorted page names
func (r *PageRepository) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.pages))
	for n := range r.pages {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Subscribe registers for names of pages changed on disk. The returned
// function cancels the subscription and closes the channel.
func (r *PageRepository) Subscribe() (<-chan string, func()) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	ch := make(chan string, subscriberBuffer)
	if r.closed {
		close(ch)
		return ch, func() {}
	}
	id := r.nextID
	r.nextID++
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.subMu.Lock()
			defer r.subMu.Unlock()
			if c, ok := r.subs[id]; ok {
				delete(r.subs, id)
				close(c)
			}
		})
	}
}

// publish never blocks: a subscriber with a full buffer misses the event.
func (r *PageRepository) publish(name string) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for id, ch := range r.subs {
		select {
		case ch <- name:
		default:
			utils.Logger.Warn("page subscriber lagging, event dropped", "subscriber", id, "page", name)
		}
	}
}

// Watch sets a fsnotify watcher on the template directory for hot reload
func (r *PageRepository) Watch() error {
	if !r.onDisk() {
		utils.Logger.Info("template dir not on disk, hot reload disabled", "dir", r.dir)
		return nil
	}
	abs, err := filepath.Abs(r.dir)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(abs); err != nil {
		_ = w.Close()
		return err
	}
	r.watcher = w

	go func() {
		var (
			mu      sync.Mutex
			pending = map[string]struct{}{}
			timer   *time.Timer
		)
		reload := func() {
			mu.Lock()
			names := make([]string, 0, len(pending))
			for n := range pending {
				names = append(names, n)
			}
			pending = map[string]struct{}{}
			mu.Unlock()

			if err := r.Load(); err != nil {
				utils.Logger.Error("failed to reload templates", "dir", abs, "err", err)
				return
			}
			sort.Strings(names)
			for _, n := range names {
				utils.Logger.Info("template changed", "page", n)
				r.publish(n)
			}
		}

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				name, ok := pageName(ev.Name)
				if !ok {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				mu.Lock()
				pending[name] = struct{}{}
				mu.Unlock()
				if timer == nil {
					timer = time.AfterFunc(debounceDelay, reload)
				} else {
					timer.Reset(debounceDelay)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				utils.Logger.Error("fsnotify error", "err", err)
			}
		}
	}()

	return nil
}

// Close stops the watcher and closes all subscriber channels.
func (r *PageRepository) Close() error {
	var err error
	if r.watcher != nil {
		err = r.watcher.Close()
	}

	r.subMu.Lock()
	defer r.subMu.Unlock()
	r.closed = true
	for id, ch := range r.subs {
		delete(r.subs, id)
		close(ch)
	}
	return err
}

func readPages(fsys fs.FS) (map[string]domain.Page, error) {
	matches, err := fs.Glob(fsys, "*"+domain.TemplateExt)
	if err != nil {
		return nil, err
	}
	pages := make(map[string]domain.Page, len(matches))
	for _, m := range matches {
		name, ok := pageName(m)
		if !ok {
			continue
		}
		src, err := fs.ReadFile(fsys, m)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read template %s: %w", m, err)
		}
		var mod time.Time
		if info, err := fs.Stat(fsys, m); err == nil {
			mod = info.ModTime()
		}
		pages[name] = domain.Page{Name: name, Source: src, ModTime: mod}
	}
	return pages, nil
}

// pageName maps a template file name to its page name.
func pageName(file string) (string, bool) {
	base := path.Base(filepath.ToSlash(file))
	if !strings.HasSuffix(base, domain.TemplateExt) || strings.HasPrefix(base, ".") {
		return "", false
	}
	name := strings.TrimSuffix(base, domain.TemplateExt)
	return name, name != ""
}
