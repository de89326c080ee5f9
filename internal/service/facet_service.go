package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownFacet = errors.New("unknown facet")

// FacetSource reads the distinct values of a facet from the catalog.
type FacetSource interface {
	ListDistinct(ctx context.Context, facet string) ([]string, error)
}

// FacetCache caches facet lists and queues their refresh.
type FacetCache interface {
	Get(ctx context.Context, facet string) ([]string, error)
	Set(ctx context.Context, facet string, values []string) error
	Enqueue(ctx context.Context, facet string) error
}

// FacetService serves the refine panel option lists.
type FacetService struct {
	source FacetSource
	cache  FacetCache
	log    zerolog.Logger
}

// NewFacetService creates a new FacetService.
func NewFacetService(source FacetSource, cache FacetCache, log zerolog.Logger) *FacetService {
	return &FacetService{
		source: source,
		cache:  cache,
		log:    log.With().Str("component", "facet_service").Logger(),
	}
}

// All loads every facet concurrently. A facet that fails to load comes back
// empty with its error flag set; the others are unaffected.
func (s *FacetService) All(ctx context.Context) model.Facets {
	lists := make(map[string]model.FacetList, len(model.FacetNames))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range model.FacetNames {
		g.Go(func() error {
			list := model.FacetList{Values: []string{}}
			values, err := s.Get(gctx, name)
			if err != nil {
				s.log.Warn().Err(err).Str("facet", name).Msg("Facet unavailable")
				list.Error = true
			} else if values != nil {
				list.Values = values
			}

			mu.Lock()
			lists[name] = list
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return model.Facets{
		Lists:       lists,
		Departments: model.Departments,
		Levels:      model.LevelOptions,
		Languages:   model.LanguageOptions,
		Others:      model.OtherOptions,
	}
}

// Get returns one facet, read through the cache.
func (s *FacetService) Get(ctx context.Context, facet string) ([]string, error) {
	if !isFacet(facet) {
		return nil, ErrUnknownFacet
	}

	values, err := s.cache.Get(ctx, facet)
	if err == nil {
		return values, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.log.Warn().Err(err).Str("facet", facet).Msg("Facet cache read failed")
	}

	return s.load(ctx, facet)
}

// Warm reloads every facet from the catalog into the cache.
func (s *FacetService) Warm(ctx context.Context) error {
	var errs []error
	for _, name := range model.FacetNames {
		if _, err := s.load(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Refresh reloads a single facet into the cache.
func (s *FacetService) Refresh(ctx context.Context, facet string) error {
	if !isFacet(facet) {
		return ErrUnknownFacet
	}
	_, err := s.load(ctx, facet)
	return err
}

// EnqueueRefresh queues facets for the refresh worker; none means all.
func (s *FacetService) EnqueueRefresh(ctx context.Context, facets ...string) ([]string, error) {
	if len(facets) == 0 {
		facets = model.FacetNames
	}
	for _, f := range facets {
		if !isFacet(f) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFacet, f)
		}
	}
	for _, f := range facets {
		if err := s.cache.Enqueue(ctx, f); err != nil {
			return nil, fmt.Errorf("enqueue %s: %w", f, err)
		}
	}
	return facets, nil
}

func (s *FacetService) load(ctx context.Context, facet string) ([]string, error) {
	values, err := s.source.ListDistinct(ctx, facet)
	if err != nil {
		return nil, fmt.Errorf("load facet %s: %w", facet, err)
	}
	if err := s.cache.Set(ctx, facet, values); err != nil {
		s.log.Warn().Err(err).Str("facet", facet).Msg("Facet cache write failed")
	}
	return values, nil
}

func isFacet(name string) bool {
	for _, f := range model.FacetNames {
		if f == name {
			return true
		}
	}
	return false
}
