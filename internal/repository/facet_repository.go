package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nthumods/mods-backend/internal/model"
)

// facetQueries maps each facet to its distinct-value view.
var facetQueries = map[string]string{
	model.FacetFirstSpecialization: `SELECT unique_first_specialization FROM distinct_first_specialization
		WHERE unique_first_specialization IS NOT NULL ORDER BY 1`,
	model.FacetSecondSpecialization: `SELECT unique_second_specialization FROM distinct_second_specialization
		WHERE unique_second_specialization IS NOT NULL ORDER BY 1`,
	model.FacetClasses: `SELECT class FROM distinct_classes
		WHERE class IS NOT NULL ORDER BY 1`,
	model.FacetVenues: `SELECT venue FROM distinct_venues
		WHERE venue IS NOT NULL ORDER BY 1`,
	model.FacetDisciplines: `SELECT discipline FROM distinct_cross_discipline
		WHERE discipline IS NOT NULL ORDER BY 1`,
}

// FacetRepository reads refine option lists from the catalog's distinct views.
type FacetRepository struct {
	pool *pgxpool.Pool
}

// NewFacetRepository creates a new FacetRepository.
func NewFacetRepository(pool *pgxpool.Pool) *FacetRepository {
	return &FacetRepository{pool: pool}
}

// ListDistinct returns the distinct values of facet.
func (r *FacetRepository) ListDistinct(ctx context.Context, facet string) ([]string, error) {
	query, ok := facetQueries[facet]
	if !ok {
		return nil, fmt.Errorf("facet %q: %w", facet, ErrNotFound)
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query facet %s: %w", facet, err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect facet %s: %w", facet, err)
	}
	return values, nil
}
