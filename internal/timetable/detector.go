package timetable

import "github.com/nthumods/mods-backend/internal/model"

// Conflict is a course timeslot that overlaps another selected entry.
type Conflict struct {
	Course   model.Course `json:"course"`
	Timeslot string       `json:"timeslot"`
}

// Conflicts returns every (course, timeslot) pair whose sessions overlap a
// session of a different entry in courses. The relation is symmetric: both
// sides of an overlap are reported. Entries are compared by position, so a
// course selected twice conflicts with itself. Unparseable tokens never
// conflict. Results follow course order, then token order.
func Conflicts(courses []model.Course) []Conflict {
	type entry struct {
		course   int
		token    string
		sessions []Session
	}

	var entries []entry
	for ci, c := range courses {
		for _, tok := range c.Times {
			sessions, err := ParseTimeslot(tok)
			if err != nil {
				continue
			}
			entries = append(entries, entry{course: ci, token: tok, sessions: sessions})
		}
	}

	hit := make([]bool, len(entries))
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].course == entries[j].course {
				continue
			}
			if anyOverlap(entries[i].sessions, entries[j].sessions) {
				hit[i], hit[j] = true, true
			}
		}
	}

	var conflicts []Conflict
	for i, e := range entries {
		if hit[i] {
			conflicts = append(conflicts, Conflict{Course: courses[e.course], Timeslot: e.token})
		}
	}
	return conflicts
}

// HasConflict reports whether rawID appears in conflicts.
func HasConflict(conflicts []Conflict, rawID string) bool {
	for _, c := range conflicts {
		if c.Course.RawID == rawID {
			return true
		}
	}
	return false
}

func anyOverlap(a, b []Session) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Overlaps(y) {
				return true
			}
		}
	}
	return false
}

// Duplicates returns the ids that occur more than once in courses, each
// once, in order of first appearance.
func Duplicates(courses []model.Course) []string {
	counts := make(map[string]int, len(courses))
	for _, c := range courses {
		counts[c.RawID]++
	}

	var dups []string
	for _, c := range courses {
		if counts[c.RawID] > 1 {
			dups = append(dups, c.RawID)
			counts[c.RawID] = 0
		}
	}
	return dups
}

// TotalCredits sums the credits of courses.
func TotalCredits(courses []model.Course) int {
	total := 0
	for _, c := range courses {
		total += c.Credits
	}
	return total
}
