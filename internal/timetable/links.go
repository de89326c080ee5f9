package timetable

import (
	"net/url"
	"sort"
	"strings"
)

const semesterParamPrefix = "semester_"

// Links are the share, subscribe and download URLs for a course list.
type Links struct {
	Share  string `json:"share"`
	Webcal string `json:"webcal"`
	ICS    string `json:"ics"`
	Image  string `json:"image"`
}

// NewLinks builds every link for ids under base.
func NewLinks(base, theme, semester string, ids []string) Links {
	return Links{
		Share:  ShareLink(base, semester, ids),
		Webcal: WebcalLink(base, semester, ids),
		ICS:    ICSLink(base, semester, ids),
		Image:  ImageLink(base, theme, semester, ids),
	}
}

// SemesterParam is the query parameter carrying a semester's course list.
func SemesterParam(semester string) string {
	return semesterParamPrefix + semester
}

// EncodeIDs escapes every id like JavaScript's encodeURI and joins them with commas.
func EncodeIDs(ids []string) string {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = encodeURI(id)
	}
	return strings.Join(escaped, ",")
}

// ShareLink is the timetable page URL that loads ids for semester.
func ShareLink(base, semester string, ids []string) string {
	return trimBase(base) + "/timetable?" + SemesterParam(semester) + "=" + EncodeIDs(ids)
}

// ICSLink is the calendar download URL for ids in semester.
func ICSLink(base, semester string, ids []string) string {
	return trimBase(base) + "/timetable/calendar.ics?" + SemesterParam(semester) + "=" + EncodeIDs(ids)
}

// WebcalLink is ICSLink with its scheme swapped for webcal://.
func WebcalLink(base, semester string, ids []string) string {
	link := ICSLink(base, semester, ids)
	if i := strings.Index(link, "://"); i >= 0 {
		link = link[i+3:]
	}
	return "webcal://" + link
}

// ImageLink is the rendered timetable image URL in the given colour theme.
func ImageLink(base, theme, semester string, ids []string) string {
	return trimBase(base) + "/timetable/image?theme=" + url.QueryEscape(theme) +
		"&" + SemesterParam(semester) + "=" + EncodeIDs(ids)
}

// ParseShared extracts the semester key and course ids from a share link's
// raw query. The first semester_<key> parameter (by key order) wins. ok is
// false when no such parameter exists or the key is not all digits.
//
// Values are decoded the way EncodeIDs encodes them: '+' stays literal and an
// '&' not followed by a name=value pair belongs to the preceding id. An id
// containing "&name=" cannot be recovered.
func ParseShared(rawQuery string) (semester string, ids []string, ok bool) {
	params := splitRawQuery(rawQuery)
	keys := make([]string, 0, len(params))
	for k := range params {
		if strings.HasPrefix(k, semesterParamPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		sem := strings.TrimPrefix(k, semesterParamPrefix)
		if !isDigits(sem) {
			continue
		}
		for _, id := range strings.Split(params[k], ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		return sem, ids, true
	}
	return "", nil, false
}

// ParseShareURL is ParseShared for a full URL string.
func ParseShareURL(raw string) (semester string, ids []string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", nil, false
	}
	return ParseShared(u.RawQuery)
}

// splitRawQuery maps each parameter to its first value, path-unescaped.
// Segments without '=' are glued back onto the previous value.
func splitRawQuery(rawQuery string) map[string]string {
	raw := make(map[string]string)
	var order []string
	last := ""
	for _, seg := range strings.Split(rawQuery, "&") {
		key, value, found := strings.Cut(seg, "=")
		if !found {
			if last != "" {
				raw[last] += "&" + seg
			}
			continue
		}
		if _, seen := raw[key]; seen {
			last = ""
			continue
		}
		raw[key] = value
		order = append(order, key)
		last = key
	}

	params := make(map[string]string, len(order))
	for _, key := range order {
		k, err := url.PathUnescape(key)
		if err != nil {
			continue
		}
		v, err := url.PathUnescape(raw[key])
		if err != nil {
			continue
		}
		params[k] = v
	}
	return params
}

func trimBase(base string) string {
	return strings.TrimRight(base, "/")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// encodeURI leaves URI-reserved and unreserved characters as they are and
// percent-encodes every other byte.
func encodeURI(s string) string {
	const keep = ";,/?:@&=+$-_.!~*'()#"
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			strings.IndexByte(keep, c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}
