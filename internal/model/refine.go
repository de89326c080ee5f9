package model

// RefineFilters is the refine panel form, bound from the search query string.
type RefineFilters struct {
	TextSearch           string   `form:"q" binding:"max=200"`
	Level                []string `form:"level" binding:"omitempty,dive,oneof=1 2 3 4 5 6 7 8 9"`
	Language             []string `form:"language" binding:"omitempty,dive,oneof=英 中"`
	Others               []string `form:"others" binding:"omitempty,dive,oneof=xclass extra_selection"`
	ClassName            string   `form:"class" binding:"max=100"`
	Department           []string `form:"department" binding:"omitempty,dive,min=1,max=10"`
	FirstSpecialization  string   `form:"first_specialization" binding:"max=100"`
	SecondSpecialization string   `form:"second_specialization" binding:"max=100"`
	Timeslots            []string `form:"timeslot" binding:"omitempty,dive,len=2"`
	Venues               []string `form:"venue" binding:"omitempty,dive,max=64"`
	Disciplines          []string `form:"discipline" binding:"omitempty,dive,max=100"`
	Page                 int      `form:"page" binding:"omitempty,min=0"`
	PerPage              int      `form:"per_page" binding:"omitempty,min=1,max=100"`
}
