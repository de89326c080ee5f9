// Package timetable turns selected courses into a renderable weekly grid and
// flags time conflicts and duplicate selections. Everything here is pure.
package timetable

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMalformedTimeslot is returned for tokens that do not parse.
var ErrMalformedTimeslot = errors.New("malformed timeslot token")

// Day is a weekday index, Monday first.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const (
	dayCodes    = "MTWRFSU"
	periodCodes = "1234n56789abc"
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Short returns the three-letter day name.
func (d Day) Short() string {
	if d < Monday || d > Sunday {
		return "?"
	}
	return dayNames[d][:3]
}

func (d Day) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Code returns the single-letter day code used in compact tokens.
func (d Day) Code() string {
	if d < Monday || d > Sunday {
		return "?"
	}
	return string(dayCodes[d])
}

// Period describes one teaching period and its clock times.
type Period struct {
	Code  string `json:"code"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Periods is the daily period table, in order.
var Periods = []Period{
	{Code: "1", Start: "08:00", End: "08:50"},
	{Code: "2", Start: "09:00", End: "09:50"},
	{Code: "3", Start: "10:10", End: "11:00"},
	{Code: "4", Start: "11:10", End: "12:00"},
	{Code: "n", Start: "12:10", End: "13:00"},
	{Code: "5", Start: "13:20", End: "14:10"},
	{Code: "6", Start: "14:20", End: "15:10"},
	{Code: "7", Start: "15:30", End: "16:20"},
	{Code: "8", Start: "16:30", End: "17:20"},
	{Code: "9", Start: "17:30", End: "18:20"},
	{Code: "a", Start: "18:30", End: "19:20"},
	{Code: "b", Start: "19:30", End: "20:20"},
	{Code: "c", Start: "20:30", End: "21:20"},
}

// Session is a contiguous run of periods on one day. Start and End are
// inclusive indices into Periods.
type Session struct {
	Day   Day `json:"day"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps reports whether both sessions share a day and at least one period.
func (s Session) Overlaps(o Session) bool {
	return s.Day == o.Day && s.Start <= o.End && o.Start <= s.End
}

// ParseTimeslot parses a timeslot token. Two encodings are accepted:
//
//	compact  "T3T4R4"   day/period code pairs
//	range    "Mon 3-4"  day name and an inclusive period range
func ParseTimeslot(token string) ([]Session, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return nil, ErrMalformedTimeslot
	}
	if strings.ContainsAny(t, " -") {
		return parseRange(t)
	}
	return parseCompact(t)
}

func parseCompact(t string) ([]Session, error) {
	if len(t)%2 != 0 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedTimeslot, t)
	}

	type cell struct{ day, period int }
	seen := make(map[cell]struct{}, len(t)/2)
	cells := make([]cell, 0, len(t)/2)
	for i := 0; i < len(t); i += 2 {
		d := strings.IndexByte(dayCodes, t[i])
		p := periodIndex(t[i+1])
		if d < 0 || p < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedTimeslot, t)
		}
		c := cell{d, p}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		cells = append(cells, c)
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].day != cells[j].day {
			return cells[i].day < cells[j].day
		}
		return cells[i].period < cells[j].period
	})

	var sessions []Session
	for _, c := range cells {
		if n := len(sessions); n > 0 {
			last := &sessions[n-1]
			if int(last.Day) == c.day && last.End+1 == c.period {
				last.End = c.period
				continue
			}
		}
		sessions = append(sessions, Session{Day: Day(c.day), Start: c.period, End: c.period})
	}
	return sessions, nil
}

func parseRange(t string) ([]Session, error) {
	fields := strings.Fields(t)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedTimeslot, t)
	}

	day, ok := parseDay(fields[0])
	if !ok {
		return nil, fmt.Errorf("%w: unknown day %q", ErrMalformedTimeslot, fields[0])
	}

	from, to, hasRange := strings.Cut(fields[1], "-")
	if !hasRange {
		to = from
	}
	if len(from) != 1 || len(to) != 1 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedTimeslot, t)
	}
	start, end := periodIndex(from[0]), periodIndex(to[0])
	if start < 0 || end < 0 || start > end {
		return nil, fmt.Errorf("%w: %q", ErrMalformedTimeslot, t)
	}
	return []Session{{Day: day, Start: start, End: end}}, nil
}

func parseDay(s string) (Day, bool) {
	if len(s) == 1 {
		if i := strings.IndexByte(dayCodes, strings.ToUpper(s)[0]); i >= 0 {
			return Day(i), true
		}
		return 0, false
	}
	for i, name := range dayNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return Day(i), true
		}
	}
	return 0, false
}

func periodIndex(b byte) int {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	return strings.IndexByte(periodCodes, b)
}

// SlotCode returns the compact two-character code for a day and period index.
func SlotCode(d Day, period int) string {
	if period < 0 || period >= len(periodCodes) {
		return ""
	}
	return d.Code() + string(periodCodes[period])
}
