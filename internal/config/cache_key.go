package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TimetableCoursesKey returns the list key holding a client's ordered course ids for a semester
func (r *CacheKeyStruct) TimetableCoursesKey(clientID, semester string) string {
	return fmt.Sprintf("client:%s:semester:%s:courses", clientID, semester)
}

// TimetableColorsKey returns the hash key mapping course id to colour for a client's semester
func (r *CacheKeyStruct) TimetableColorsKey(clientID, semester string) string {
	return fmt.Sprintf("client:%s:semester:%s:colors", clientID, semester)
}

// PreferencesKey returns the hash key holding a client's display preferences
func (r *CacheKeyStruct) PreferencesKey(clientID string) string {
	return fmt.Sprintf("client:%s:preferences", clientID)
}

// FacetKey returns the cache key for a facet option list
func (r *CacheKeyStruct) FacetKey(facet string) string {
	return fmt.Sprintf("facet:%s", facet)
}

// RateLimitKey returns the counter key for a client address in a rate window
func (r *CacheKeyStruct) RateLimitKey(scope, addr string, window int64) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, addr, window)
}

var CacheKey = NewCacheKeyStruct()
