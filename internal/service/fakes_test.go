package service

import (
	"context"
	"errors"
	"sync"

	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/repository"
)

type fakeStore struct {
	lists  map[string][]string
	colors map[string]map[string]string
	prefs  map[string]model.Preferences
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lists:  map[string][]string{},
		colors: map[string]map[string]string{},
		prefs:  map[string]model.Preferences{},
	}
}

func key(clientID, semester string) string { return clientID + "/" + semester }

func (f *fakeStore) List(_ context.Context, clientID, semester string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.lists[key(clientID, semester)]...), nil
}

func (f *fakeStore) Colors(_ context.Context, clientID, semester string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range f.colors[key(clientID, semester)] {
		out[k] = v
	}
	return out, f.err
}

func (f *fakeStore) Append(_ context.Context, clientID, semester, rawID, color string) error {
	k := key(clientID, semester)
	f.lists[k] = append(f.lists[k], rawID)
	if f.colors[k] == nil {
		f.colors[k] = map[string]string{}
	}
	if _, ok := f.colors[k][rawID]; !ok {
		f.colors[k][rawID] = color
	}
	return nil
}

func (f *fakeStore) Remove(_ context.Context, clientID, semester, rawID string) (bool, error) {
	k := key(clientID, semester)
	list := f.lists[k]
	for i, id := range list {
		if id != rawID {
			continue
		}
		f.lists[k] = append(list[:i:i], list[i+1:]...)
		for _, rest := range f.lists[k] {
			if rest == rawID {
				return true, nil
			}
		}
		delete(f.colors[k], rawID)
		return true, nil
	}
	return false, nil
}

func (f *fakeStore) Replace(_ context.Context, clientID, semester string, ids []string, colors map[string]string) error {
	k := key(clientID, semester)
	f.lists[k] = append([]string(nil), ids...)
	f.colors[k] = map[string]string{}
	for id, c := range colors {
		f.colors[k][id] = c
	}
	return nil
}

func (f *fakeStore) GetPreferences(_ context.Context, clientID string) (model.Preferences, bool, error) {
	p, ok := f.prefs[clientID]
	return p, ok, nil
}

func (f *fakeStore) SetPreferences(_ context.Context, clientID string, prefs model.Preferences) error {
	f.prefs[clientID] = prefs
	return nil
}

type fakeCourses map[string]model.Course

func (f fakeCourses) GetByRawID(_ context.Context, rawID string) (*model.Course, error) {
	c, ok := f[rawID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f fakeCourses) ListByRawIDs(_ context.Context, ids []string) ([]model.Course, error) {
	var out []model.Course
	for _, id := range ids {
		if c, ok := f[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeFacetSource struct {
	values map[string][]string
	fail   map[string]bool
	mu     sync.Mutex
	calls  int
}

func (f *fakeFacetSource) ListDistinct(_ context.Context, facet string) ([]string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fail[facet] {
		return nil, errors.New("view unavailable")
	}
	return f.values[facet], nil
}

type fakeFacetCache struct {
	mu     sync.Mutex
	values map[string][]string
	queued []string
}

func newFakeFacetCache() *fakeFacetCache {
	return &fakeFacetCache{values: map[string][]string{}}
}

func (f *fakeFacetCache) Get(_ context.Context, facet string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[facet]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (f *fakeFacetCache) Set(_ context.Context, facet string, values []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[facet] = values
	return nil
}

func (f *fakeFacetCache) Enqueue(_ context.Context, facet string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, facet)
	return nil
}

type fakeSearcher struct {
	query, filters string
	page, perPage  int
	err            error
}

func (f *fakeSearcher) Search(query, filters string, page, perPage int) (*model.SearchResult, error) {
	f.query, f.filters, f.page, f.perPage = query, filters, page, perPage
	if f.err != nil {
		return nil, f.err
	}
	return &model.SearchResult{Hits: []model.Course{}, Page: page, HitsPerPage: perPage}, nil
}
