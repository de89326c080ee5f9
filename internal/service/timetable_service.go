package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/repository"
	"github.com/nthumods/mods-backend/internal/timetable"
	"github.com/rs/zerolog"
)

var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseNotInTimetable = errors.New("course is not in this timetable")
	ErrUnknownTheme         = errors.New("unknown colour theme")
	ErrInvalidShareLink     = errors.New("share link carries no timetable")
	ErrSemesterMismatch     = errors.New("share link is for a different semester")
)

// TimetableStore persists client timetables and preferences.
type TimetableStore interface {
	List(ctx context.Context, clientID, semester string) ([]string, error)
	Colors(ctx context.Context, clientID, semester string) (map[string]string, error)
	Append(ctx context.Context, clientID, semester, rawID, color string) error
	Remove(ctx context.Context, clientID, semester, rawID string) (bool, error)
	Replace(ctx context.Context, clientID, semester string, ids []string, colors map[string]string) error
	GetPreferences(ctx context.Context, clientID string) (model.Preferences, bool, error)
	SetPreferences(ctx context.Context, clientID string, prefs model.Preferences) error
}

// CourseSource loads course records by id.
type CourseSource interface {
	GetByRawID(ctx context.Context, rawID string) (*model.Course, error)
	ListByRawIDs(ctx context.Context, ids []string) ([]model.Course, error)
}

// TimetableView is everything the course list panel renders for one semester.
type TimetableView struct {
	Semester     string               `json:"semester"`
	CourseIDs    []string             `json:"course_ids"`
	Courses      []model.Course       `json:"courses"`
	Colors       map[string]string    `json:"colors"`
	TotalCredits int                  `json:"total_credits"`
	Conflicts    []timetable.Conflict `json:"conflicts"`
	Duplicates   []string             `json:"duplicates"`
	Grid         timetable.Grid       `json:"grid"`
	Links        timetable.Links      `json:"links"`
	Missing      []string             `json:"missing"`
}

// DefaultPreferences apply to clients that never saved any.
var DefaultPreferences = model.Preferences{Vertical: model.DefaultVertical, Theme: timetable.DefaultTheme}

// TimetableService manages per-client semester timetables.
type TimetableService struct {
	store   TimetableStore
	courses CourseSource
	baseURL string
	log     zerolog.Logger
}

// NewTimetableService creates a new TimetableService.
func NewTimetableService(store TimetableStore, courses CourseSource, baseURL string, log zerolog.Logger) *TimetableService {
	return &TimetableService{
		store:   store,
		courses: courses,
		baseURL: baseURL,
		log:     log.With().Str("component", "timetable_service").Logger(),
	}
}

// GetSemesterCourses returns the ordered course ids of a semester, empty when unknown.
func (s *TimetableService) GetSemesterCourses(ctx context.Context, clientID, semester string) ([]string, error) {
	ids, err := s.store.List(ctx, clientID, semester)
	if err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// AddCourse appends rawID to the semester. Adding a course that is already
// present is allowed; the copy is reported by the duplicate check. The first
// copy of an id receives the next free colour of the client's theme.
func (s *TimetableService) AddCourse(ctx context.Context, clientID, semester, rawID string) error {
	if _, err := s.courses.GetByRawID(ctx, rawID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("get course: %w", err)
	}

	colors, err := s.store.Colors(ctx, clientID, semester)
	if err != nil {
		return fmt.Errorf("get colours: %w", err)
	}
	color, ok := colors[rawID]
	if !ok {
		prefs, err := s.Preferences(ctx, clientID)
		if err != nil {
			return err
		}
		color = timetable.NextColor(prefs.Theme, colors)
	}

	if err := s.store.Append(ctx, clientID, semester, rawID, color); err != nil {
		return fmt.Errorf("append course: %w", err)
	}

	s.log.Debug().Str("client_id", clientID).Str("semester", semester).Str("raw_id", rawID).Msg("Course added")
	return nil
}

// DeleteCourse removes the first occurrence of rawID.
func (s *TimetableService) DeleteCourse(ctx context.Context, clientID, semester, rawID string) error {
	removed, err := s.store.Remove(ctx, clientID, semester, rawID)
	if err != nil {
		return fmt.Errorf("remove course: %w", err)
	}
	if !removed {
		return ErrCourseNotInTimetable
	}
	return nil
}

// Clear empties a semester.
func (s *TimetableService) Clear(ctx context.Context, clientID, semester string) error {
	if err := s.store.Replace(ctx, clientID, semester, nil, nil); err != nil {
		return fmt.Errorf("clear timetable: %w", err)
	}
	return nil
}

// SetCourses replaces a semester with ids, recolouring from the client's theme.
func (s *TimetableService) SetCourses(ctx context.Context, clientID, semester string, ids []string) error {
	prefs, err := s.Preferences(ctx, clientID)
	if err != nil {
		return err
	}
	colors := timetable.AssignColors(prefs.Theme, ids)
	if err := s.store.Replace(ctx, clientID, semester, ids, colors); err != nil {
		return fmt.Errorf("replace timetable: %w", err)
	}
	return nil
}

// Import replaces a semester with the course list of a share link or an
// explicit id list. A share link for another semester is rejected.
func (s *TimetableService) Import(ctx context.Context, clientID, semester string, req model.ImportTimetableRequest) ([]string, error) {
	ids := req.CourseIDs
	if req.ShareURL != "" {
		sem, shared, ok := timetable.ParseShareURL(req.ShareURL)
		if !ok {
			return nil, ErrInvalidShareLink
		}
		if sem != semester {
			return nil, ErrSemesterMismatch
		}
		ids = shared
	}
	if len(ids) == 0 {
		return nil, ErrInvalidShareLink
	}

	if err := s.SetCourses(ctx, clientID, semester, ids); err != nil {
		return nil, err
	}

	s.log.Info().Str("client_id", clientID).Str("semester", semester).Int("courses", len(ids)).Msg("Timetable imported")
	return ids, nil
}

// View assembles the list panel for a client's semester.
func (s *TimetableService) View(ctx context.Context, clientID, semester string) (*TimetableView, error) {
	ids, err := s.GetSemesterCourses(ctx, clientID, semester)
	if err != nil {
		return nil, err
	}
	colors, err := s.store.Colors(ctx, clientID, semester)
	if err != nil {
		return nil, fmt.Errorf("get colours: %w", err)
	}
	prefs, err := s.Preferences(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, semester, ids, colors, prefs.Theme)
}

// SharedView assembles the list panel for a shared course list.
func (s *TimetableService) SharedView(ctx context.Context, semester string, ids []string, theme string) (*TimetableView, error) {
	if !timetable.HasTheme(theme) {
		theme = timetable.DefaultTheme
	}
	return s.buildView(ctx, semester, ids, timetable.AssignColors(theme, ids), theme)
}

// CourseData resolves ids to courses, keeping order and repeats. Ids the
// catalog does not know are returned separately.
func (s *TimetableService) CourseData(ctx context.Context, ids []string) ([]model.Course, []string, error) {
	courses := []model.Course{}
	missing := []string{}
	if len(ids) == 0 {
		return courses, missing, nil
	}

	found, err := s.courses.ListByRawIDs(ctx, unique(ids))
	if err != nil {
		return nil, nil, fmt.Errorf("list courses: %w", err)
	}
	byID := make(map[string]model.Course, len(found))
	for _, c := range found {
		byID[c.RawID] = c
	}

	seenMissing := make(map[string]bool)
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			if !seenMissing[id] {
				seenMissing[id] = true
				missing = append(missing, id)
			}
			continue
		}
		courses = append(courses, c)
	}
	return courses, missing, nil
}

func (s *TimetableService) buildView(ctx context.Context, semester string, ids []string, colors map[string]string, theme string) (*TimetableView, error) {
	courses, missing, err := s.CourseData(ctx, ids)
	if err != nil {
		return nil, err
	}
	if colors == nil {
		colors = map[string]string{}
	}
	conflicts := timetable.Conflicts(courses)
	if conflicts == nil {
		conflicts = []timetable.Conflict{}
	}
	duplicates := timetable.Duplicates(courses)
	if duplicates == nil {
		duplicates = []string{}
	}

	return &TimetableView{
		Semester:     semester,
		CourseIDs:    ids,
		Courses:      courses,
		Colors:       colors,
		TotalCredits: timetable.TotalCredits(courses),
		Conflicts:    conflicts,
		Duplicates:   duplicates,
		Grid:         timetable.Build(courses, colors),
		Links:        timetable.NewLinks(s.baseURL, theme, semester, ids),
		Missing:      missing,
	}, nil
}

// Preferences returns the client's preferences, defaults when none are stored.
func (s *TimetableService) Preferences(ctx context.Context, clientID string) (model.Preferences, error) {
	prefs, ok, err := s.store.GetPreferences(ctx, clientID)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	if !ok {
		return DefaultPreferences, nil
	}
	if !timetable.HasTheme(prefs.Theme) {
		prefs.Theme = timetable.DefaultTheme
	}
	return prefs, nil
}

// UpdatePreferences applies the non-nil fields of req.
func (s *TimetableService) UpdatePreferences(ctx context.Context, clientID string, req model.UpdatePreferencesRequest) (model.Preferences, error) {
	prefs, err := s.Preferences(ctx, clientID)
	if err != nil {
		return model.Preferences{}, err
	}
	if req.Vertical != nil {
		prefs.Vertical = *req.Vertical
	}
	if req.Theme != nil {
		if !timetable.HasTheme(*req.Theme) {
			return model.Preferences{}, ErrUnknownTheme
		}
		prefs.Theme = *req.Theme
	}

	if err := s.store.SetPreferences(ctx, clientID, prefs); err != nil {
		return model.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return prefs, nil
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
