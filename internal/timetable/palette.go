package timetable

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultTheme is used when a client has not picked a palette.
const DefaultTheme = "pastelColors"

var palettes = map[string][]string{
	"pastelColors": {
		"#FFB3BA", "#FFDFBA", "#FFFFBA", "#BAFFC9", "#BAE1FF",
		"#E0BBE4", "#FFDFD3", "#C9C9FF", "#B5EAD7", "#F1CBFF",
	},
	"harmoniousBlue": {
		"#03045E", "#023E8A", "#0077B6", "#0096C7", "#00B4D8",
		"#48CAE4", "#90E0EF", "#ADE8F4", "#CAF0F8", "#5E60CE",
	},
	"tropicalVibes": {
		"#F94144", "#F3722C", "#F8961E", "#F9844A", "#F9C74F",
		"#90BE6D", "#43AA8B", "#4D908E", "#577590", "#277DA1",
	},
	"earthyTones": {
		"#582F0E", "#7F4F24", "#936639", "#A68A64", "#B6AD90",
		"#C2C5AA", "#A4AC86", "#656D4A", "#414833", "#333D29",
	},
}

// Themes returns the known palette names, sorted.
func Themes() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasTheme reports whether theme names a known palette.
func HasTheme(theme string) bool {
	_, ok := palettes[theme]
	return ok
}

// Palette returns the colours of theme, or of DefaultTheme if unknown.
func Palette(theme string) []string {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[DefaultTheme]
}

// NextColor picks the first palette colour not yet present in assigned.
// When every colour is taken it cycles by the number of assignments.
func NextColor(theme string, assigned map[string]string) string {
	palette := Palette(theme)
	used := make(map[string]struct{}, len(assigned))
	for _, c := range assigned {
		used[strings.ToUpper(c)] = struct{}{}
	}
	for _, c := range palette {
		if _, taken := used[c]; !taken {
			return c
		}
	}
	return palette[len(assigned)%len(palette)]
}

// AssignColors gives each distinct id a colour in order of first appearance.
func AssignColors(theme string, ids []string) map[string]string {
	palette := Palette(theme)
	colors := make(map[string]string, len(ids))
	for _, id := range ids {
		if _, ok := colors[id]; ok {
			continue
		}
		colors[id] = palette[len(colors)%len(palette)]
	}
	return colors
}

// TextColor returns black or white, whichever reads better on bg.
// Anything that is not #rrggbb gets black.
func TextColor(bg string) string {
	hex := strings.TrimPrefix(bg, "#")
	if len(hex) != 6 {
		return "#000000"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "#000000"
	}
	r, g, b := float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)
	if 0.299*r+0.587*g+0.114*b > 150 {
		return "#000000"
	}
	return "#FFFFFF"
}
