// Package exporter renders a course list as downloadable files.
package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/timetable"
)

// CalendarOptions anchor weekly sessions to real dates.
type CalendarOptions struct {
	Name          string
	SemesterStart time.Time
	Weeks         int
	Location      *time.Location
}

// GenerateICS writes one weekly-recurring event per course session.
// Sessions whose timeslot token does not parse are skipped.
func GenerateICS(courses []model.Course, opts CalendarOptions, w io.Writer) error {
	if opts.Location == nil {
		return fmt.Errorf("calendar location is required")
	}
	if opts.Weeks <= 0 {
		return fmt.Errorf("calendar weeks must be positive, got %d", opts.Weeks)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRTimezone(opts.Location.String())
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	first := startOfDay(opts.SemesterStart.In(opts.Location))
	monday := first.AddDate(0, 0, -((int(first.Weekday()) + 6) % 7))
	now := time.Now()
	rrule := fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", opts.Weeks)

	for ci, c := range courses {
		for mi, m := range c.Meetings() {
			sessions, err := timetable.ParseTimeslot(m.Time)
			if err != nil {
				continue
			}
			for si, s := range sessions {
				day := monday.AddDate(0, 0, int(s.Day))
				if day.Before(first) {
					day = day.AddDate(0, 0, 7)
				}

				startAt, err := clockOn(day, timetable.Periods[s.Start].Start)
				if err != nil {
					continue
				}
				endAt, err := clockOn(day, timetable.Periods[s.End].End)
				if err != nil {
					continue
				}

				uid := fmt.Sprintf("%d-%s-%d-%d@nthumods", ci, strings.ReplaceAll(c.RawID, " ", ""), mi, si)
				event := cal.AddEvent(uid)
				event.SetDtStampTime(now)
				event.SetStartAt(startAt)
				event.SetEndAt(endAt)
				event.SetSummary(c.DisplayName())
				if m.Venue != "" {
					event.SetLocation(m.Venue)
				}
				event.SetDescription(describe(c))
				event.AddRrule(rrule)
			}
		}
	}

	return cal.SerializeTo(w)
}

func describe(c model.Course) string {
	lines := []string{c.RawID}
	if c.NameEn != "" && c.NameEn != c.DisplayName() {
		lines = append(lines, c.NameEn)
	}
	if len(c.TeacherZh) > 0 {
		lines = append(lines, strings.Join(c.TeacherZh, ", "))
	}
	lines = append(lines, fmt.Sprintf("%d credits", c.Credits))
	return strings.Join(lines, "\n")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func clockOn(day time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}
