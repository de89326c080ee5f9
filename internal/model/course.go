package model

// Course is the read-only course record served by the catalog backend.
// Venues and Times are index-aligned: Times[i] is held in Venues[i].
type Course struct {
	RawID                string   `json:"raw_id"`
	Semester             string   `json:"semester"`
	Department           string   `json:"department"`
	CourseCode           string   `json:"course"`
	ClassName            string   `json:"class"`
	NameZh               string   `json:"name_zh"`
	NameEn               string   `json:"name_en"`
	TeacherZh            []string `json:"teacher_zh"`
	TeacherEn            []string `json:"teacher_en"`
	Credits              int      `json:"credits"`
	Language             string   `json:"language"`
	Venues               []string `json:"venues"`
	Times                []string `json:"times"`
	FirstSpecialization  []string `json:"first_specialization"`
	SecondSpecialization []string `json:"second_specialization"`
	CrossDiscipline      []string `json:"cross_discipline"`
}

// Meeting pairs a venue with the timeslot token scheduled there.
type Meeting struct {
	Venue string `json:"venue"`
	Time  string `json:"time"`
}

// Meetings zips Venues and Times. A side that runs short is padded with "".
func (c Course) Meetings() []Meeting {
	n := len(c.Venues)
	if len(c.Times) > n {
		n = len(c.Times)
	}
	meetings := make([]Meeting, 0, n)
	for i := 0; i < n; i++ {
		var m Meeting
		if i < len(c.Venues) {
			m.Venue = c.Venues[i]
		}
		if i < len(c.Times) {
			m.Time = c.Times[i]
		}
		meetings = append(meetings, m)
	}
	return meetings
}

// DisplayName prefers the Chinese title and falls back to English.
func (c Course) DisplayName() string {
	if c.NameZh != "" {
		return c.NameZh
	}
	return c.NameEn
}

// SearchResult is one page of catalog search hits.
type SearchResult struct {
	Hits        []Course `json:"hits"`
	TotalHits   int      `json:"total_hits"`
	Page        int      `json:"page"`
	TotalPages  int      `json:"total_pages"`
	HitsPerPage int      `json:"hits_per_page"`
}
