package model

// Facet names. Each maps to a distinct-value view in the catalog database.
const (
	FacetFirstSpecialization  = "first_specialization"
	FacetSecondSpecialization = "second_specialization"
	FacetClasses              = "classes"
	FacetVenues               = "venues"
	FacetDisciplines          = "disciplines"
)

// FacetNames lists every database-backed facet in display order.
var FacetNames = []string{
	FacetFirstSpecialization,
	FacetSecondSpecialization,
	FacetClasses,
	FacetVenues,
	FacetDisciplines,
}

// FacetList is the option list of one facet. Error is set when the
// list could not be loaded; Values is then empty.
type FacetList struct {
	Values []string `json:"values"`
	Error  bool     `json:"error"`
}

// Option is a fixed refine option.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LevelOptions are the course-number levels (1xxx .. 9xxx).
var LevelOptions = []Option{
	{Value: "1", Label: "1xxx"},
	{Value: "2", Label: "2xxx"},
	{Value: "3", Label: "3xxx"},
	{Value: "4", Label: "4xxx"},
	{Value: "5", Label: "5xxx"},
	{Value: "6", Label: "6xxx"},
	{Value: "7", Label: "7xxx"},
	{Value: "8", Label: "8xxx"},
	{Value: "9", Label: "9xxx"},
}

// LanguageOptions are the teaching languages.
var LanguageOptions = []Option{
	{Value: "英", Label: "English"},
	{Value: "中", Label: "國語"},
}

// OtherOptions are boolean course flags.
var OtherOptions = []Option{
	{Value: "xclass", Label: "X-Class"},
	{Value: "extra_selection", Label: "Allows Extra Selection"},
}

// Facets is the full refine panel payload.
type Facets struct {
	Lists       map[string]FacetList `json:"lists"`
	Departments []Department         `json:"departments"`
	Levels      []Option             `json:"levels"`
	Languages   []Option             `json:"languages"`
	Others      []Option             `json:"others"`
}

// Degraded reports whether any facet list failed to load.
func (f Facets) Degraded() bool {
	for _, l := range f.Lists {
		if l.Error {
			return true
		}
	}
	return false
}

// RefreshFacetsRequest selects facets to re-warm; empty means all.
type RefreshFacetsRequest struct {
	Facets []string `json:"facets" binding:"omitempty,max=10,dive,required"`
}
