package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/repository"
	"github.com/rs/zerolog"
)

var ErrSearchUnavailable = errors.New("course search is unavailable")

const (
	DefaultHitsPerPage = 20
	MaxHitsPerPage     = 100
)

// CourseSearcher runs full-text queries against the hosted index.
type CourseSearcher interface {
	Search(query, filters string, page, perPage int) (*model.SearchResult, error)
}

// CourseService answers catalog lookups and searches.
type CourseService struct {
	courses  CourseSource
	searcher CourseSearcher
	log      zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseSource, searcher CourseSearcher, log zerolog.Logger) *CourseService {
	return &CourseService{
		courses:  courses,
		searcher: searcher,
		log:      log.With().Str("component", "course_service").Logger(),
	}
}

// Get returns one course by id.
func (s *CourseService) Get(ctx context.Context, rawID string) (*model.Course, error) {
	c, err := s.courses.GetByRawID(ctx, rawID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return c, nil
}

// Search queries the index with the refine panel filters applied.
func (s *CourseService) Search(filters model.RefineFilters) (*model.SearchResult, error) {
	perPage := filters.PerPage
	if perPage <= 0 {
		perPage = DefaultHitsPerPage
	}
	if perPage > MaxHitsPerPage {
		perPage = MaxHitsPerPage
	}

	expr := BuildSearchFilters(filters)
	res, err := s.searcher.Search(strings.TrimSpace(filters.TextSearch), expr, filters.Page, perPage)
	if err != nil {
		s.log.Error().Err(err).Str("filters", expr).Msg("Search failed")
		return nil, ErrSearchUnavailable
	}
	return res, nil
}

// BuildSearchFilters turns refine filters into an index filter expression.
// Values of one attribute are ORed; attributes are ANDed.
func BuildSearchFilters(f model.RefineFilters) string {
	var groups []string
	add := func(attr string, values ...string) {
		var terms []string
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				terms = append(terms, attr+":"+quoteFilter(v))
			}
		}
		switch len(terms) {
		case 0:
		case 1:
			groups = append(groups, terms[0])
		default:
			groups = append(groups, "("+strings.Join(terms, " OR ")+")")
		}
	}

	add("level", f.Level...)
	add("language", f.Language...)
	add("department", f.Department...)
	add("class", f.ClassName)
	add("first_specialization", f.FirstSpecialization)
	add("second_specialization", f.SecondSpecialization)
	add("time_slots", f.Timeslots...)
	add("venues", f.Venues...)
	add("cross_discipline", f.Disciplines...)

	for _, o := range f.Others {
		switch o {
		case "xclass", "extra_selection":
			groups = append(groups, o+":true")
		}
	}

	return strings.Join(groups, " AND ")
}

func quoteFilter(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
