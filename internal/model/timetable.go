package model

// SemesterURI binds the :semester path segment.
type SemesterURI struct {
	Semester string `uri:"semester" binding:"required,semester"`
}

// AddCourseRequest is the payload for adding a course to a timetable.
type AddCourseRequest struct {
	RawID string `json:"raw_id" binding:"required,max=32"`
}

// ImportTimetableRequest replaces a semester timetable with a shared list.
// Either ShareURL or CourseIDs must be given.
type ImportTimetableRequest struct {
	ShareURL  string   `json:"share_url" binding:"omitempty,url"`
	CourseIDs []string `json:"course_ids" binding:"omitempty,max=64,dive,required,max=32"`
}

// DefaultVertical is the layout used until a client picks one.
const DefaultVertical = true

// Preferences are the per-client display settings.
type Preferences struct {
	Vertical bool   `json:"vertical"`
	Theme    string `json:"theme"`
}

// UpdatePreferencesRequest patches Preferences; nil fields are left alone.
type UpdatePreferencesRequest struct {
	Vertical *bool   `json:"vertical"`
	Theme    *string `json:"theme" binding:"omitempty,min=1,max=32"`
}
