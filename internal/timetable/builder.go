package timetable

import "github.com/nthumods/mods-backend/internal/model"

// Slot is one rendered course session on the grid.
type Slot struct {
	CourseID  string `json:"course_id"`
	NameZh    string `json:"name_zh"`
	NameEn    string `json:"name_en"`
	Venue     string `json:"venue"`
	Token     string `json:"token"`
	Day       Day    `json:"day"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Color     string `json:"color"`
	TextColor string `json:"text_color"`
}

// Grid is a day x period view of the selected courses. Cells[d][p] holds
// indices into Slots for every slot covering that day and period.
type Grid struct {
	Days    []string  `json:"days"`
	Periods []Period  `json:"periods"`
	Slots   []Slot    `json:"slots"`
	Cells   [][][]int `json:"cells"`
}

// Build lays courses out on a weekly grid. colors maps course id to a
// background colour; ids missing from it get the default palette colour for
// their position. Tokens that do not parse are left off the grid.
func Build(courses []model.Course, colors map[string]string) Grid {
	fallback := Palette(DefaultTheme)

	var slots []Slot
	lastDay := Friday
	for i, c := range courses {
		color, ok := colors[c.RawID]
		if !ok || color == "" {
			color = fallback[i%len(fallback)]
		}
		text := TextColor(color)

		for _, m := range c.Meetings() {
			sessions, err := ParseTimeslot(m.Time)
			if err != nil {
				continue
			}
			for _, s := range sessions {
				if s.Day > lastDay {
					lastDay = s.Day
				}
				slots = append(slots, Slot{
					CourseID:  c.RawID,
					NameZh:    c.NameZh,
					NameEn:    c.NameEn,
					Venue:     m.Venue,
					Token:     m.Time,
					Day:       s.Day,
					Start:     s.Start,
					End:       s.End,
					Color:     color,
					TextColor: text,
				})
			}
		}
	}

	days := make([]string, 0, int(lastDay)+1)
	for d := Monday; d <= lastDay; d++ {
		days = append(days, d.Short())
	}

	cells := make([][][]int, len(days))
	for d := range cells {
		cells[d] = make([][]int, len(Periods))
		for p := range cells[d] {
			cells[d][p] = []int{}
		}
	}
	for i, s := range slots {
		for p := s.Start; p <= s.End; p++ {
			cells[s.Day][p] = append(cells[s.Day][p], i)
		}
	}

	if slots == nil {
		slots = []Slot{}
	}
	return Grid{
		Days:    days,
		Periods: Periods,
		Slots:   slots,
		Cells:   cells,
	}
}
