// Package testutil holds test doubles shared by package tests.
package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/OliveiraNt/xgserver/internal/domain"
)

// FakePageRepository is an in-memory domain.PageRepository.
type FakePageRepository struct {
	mu      sync.Mutex
	Pages   map[string]domain.Page
	subs    []chan string
	LoadErr error
	Closed  bool
}

func NewFakePageRepository() *FakePageRepository {
	return &FakePageRepository{Pages: map[string]domain.Page{}}
}

// Put stores a page with the given source.
func (f *FakePageRepository) Put(name, src string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Pages[name] = domain.Page{Name: name, Source: []byte(src), ModTime: time.Now()}
}

// Notify publishes name to every subscriber.
func (f *FakePageRepository) Notify(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		ch <- name
	}
}

func (f *FakePageRepository) Load() error { return f.LoadErr }
func (f *FakePageRepository) Watch() error { return nil }

func (f *FakePageRepository) FindByName(name string) (domain.Page, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.Pages[name]
	return p, ok
}

func (f *FakePageRepository) Names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Pages))
	for n := range f.Pages {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (f *FakePageRepository) Subscribe() (<-chan string, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan string, 8)
	f.subs = append(f.subs, ch)
	return ch, func() {}
}

// Subscribers reports the number of active subscriptions.
func (f *FakePageRepository) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *FakePageRepository) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
