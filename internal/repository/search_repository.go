package repository

import (
	"fmt"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	"github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/nthumods/mods-backend/internal/model"
)

// SearchRepository queries the hosted course search index.
type SearchRepository struct {
	index *search.Index
}

// NewSearchRepository creates a new SearchRepository. A nil index yields a
// repository whose Search always fails; callers report search as unavailable.
func NewSearchRepository(index *search.Index) *SearchRepository {
	return &SearchRepository{index: index}
}

// Search runs a full-text query restricted by an index filter expression.
func (r *SearchRepository) Search(query, filters string, page, perPage int) (*model.SearchResult, error) {
	if r.index == nil {
		return nil, fmt.Errorf("search index: %w", ErrNotFound)
	}

	options := []interface{}{opt.Page(page), opt.HitsPerPage(perPage)}
	if filters != "" {
		options = append(options, opt.Filters(filters))
	}

	res, err := r.index.Search(query, options...)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	hits := []model.Course{}
	if err := res.UnmarshalHits(&hits); err != nil {
		return nil, fmt.Errorf("decode hits: %w", err)
	}

	return &model.SearchResult{
		Hits:        hits,
		TotalHits:   res.NbHits,
		Page:        res.Page,
		TotalPages:  res.NbPages,
		HitsPerPage: res.HitsPerPage,
	}, nil
}
