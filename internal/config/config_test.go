package config

import (
	"reflect"
	"testing"
	"time"
)

func TestParseOrigins(t *testing.T) {
	if got := parseOrigins(""); got != nil {
		t.Errorf("parseOrigins(\"\") = %v, want nil", got)
	}
	got := parseOrigins(" https://nthumods.com, ,http://localhost:3000 ")
	want := []string{"https://nthumods.com", "http://localhost:3000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseOrigins = %v, want %v", got, want)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("CURRENT_SEMESTER", "1122")
	t.Setenv("SEMESTER_START", "2024-02-19")
	t.Setenv("SEMESTER_WEEKS", "not-a-number")
	t.Setenv("FACET_CACHE_TTL_MINUTES", "5")

	cfg := Load()

	if cfg.CurrentSemester != "1122" {
		t.Errorf("CurrentSemester = %q", cfg.CurrentSemester)
	}
	if want := time.Date(2024, time.February, 19, 0, 0, 0, 0, time.UTC); !cfg.SemesterStart.Equal(want) {
		t.Errorf("SemesterStart = %v, want %v", cfg.SemesterStart, want)
	}
	if cfg.SemesterWeeks != 16 {
		t.Errorf("SemesterWeeks = %d, want fallback 16", cfg.SemesterWeeks)
	}
	if cfg.FacetCacheTTL != 5*time.Minute {
		t.Errorf("FacetCacheTTL = %v", cfg.FacetCacheTTL)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := CacheKey.TimetableCoursesKey("abc", "1121"); got != "client:abc:semester:1121:courses" {
		t.Errorf("TimetableCoursesKey = %q", got)
	}
	if got := CacheKey.FacetKey("venues"); got != "facet:venues" {
		t.Errorf("FacetKey = %q", got)
	}
}
