package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nthumods/mods-backend/internal/model"
)

const courseColumns = `raw_id, semester, department, course, class,
	COALESCE(name_zh, ''), COALESCE(name_en, ''),
	COALESCE(teacher_zh, '{}'), COALESCE(teacher_en, '{}'),
	COALESCE(credits, 0), COALESCE(language, ''),
	COALESCE(venues, '{}'), COALESCE(times, '{}'),
	COALESCE(first_specialization, '{}'), COALESCE(second_specialization, '{}'),
	COALESCE(cross_discipline, '{}')`

// CourseRepository reads course records from the catalog database.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// GetByRawID retrieves a single course. Returns ErrNotFound if it does not exist.
func (r *CourseRepository) GetByRawID(ctx context.Context, rawID string) (*model.Course, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE raw_id = $1`, rawID)

	c, err := scanCourse(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("course %q: %w", rawID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByRawIDs retrieves every course whose id is in ids, in no particular
// order. Unknown ids are silently absent from the result.
func (r *CourseRepository) ListByRawIDs(ctx context.Context, ids []string) ([]model.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses WHERE raw_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func scanCourse(row pgx.Row) (model.Course, error) {
	var c model.Course
	err := row.Scan(
		&c.RawID, &c.Semester, &c.Department, &c.CourseCode, &c.ClassName,
		&c.NameZh, &c.NameEn,
		&c.TeacherZh, &c.TeacherEn,
		&c.Credits, &c.Language,
		&c.Venues, &c.Times,
		&c.FirstSpecialization, &c.SecondSpecialization,
		&c.CrossDiscipline,
	)
	return c, err
}
