package timetable

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTimeslot(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  []Session
	}{
		{
			name:  "compact single period",
			token: "M3",
			want:  []Session{{Day: Monday, Start: 2, End: 2}},
		},
		{
			name:  "compact consecutive periods merge",
			token: "T3T4",
			want:  []Session{{Day: Tuesday, Start: 2, End: 3}},
		},
		{
			name:  "compact across days is sorted",
			token: "R4T3T4",
			want: []Session{
				{Day: Tuesday, Start: 2, End: 3},
				{Day: Thursday, Start: 3, End: 3},
			},
		},
		{
			name:  "compact lunch period sits between 4 and 5",
			token: "W4WnW5",
			want:  []Session{{Day: Wednesday, Start: 3, End: 5}},
		},
		{
			name:  "compact gap splits sessions",
			token: "F1F3",
			want: []Session{
				{Day: Friday, Start: 0, End: 0},
				{Day: Friday, Start: 2, End: 2},
			},
		},
		{
			name:  "compact repeated pair collapses",
			token: "M1M1",
			want:  []Session{{Day: Monday, Start: 0, End: 0}},
		},
		{
			name:  "range with short day name",
			token: "Mon 3-4",
			want:  []Session{{Day: Monday, Start: 2, End: 3}},
		},
		{
			name:  "range with letter day and single period",
			token: "r 5",
			want:  []Session{{Day: Thursday, Start: 5, End: 5}},
		},
		{
			name:  "range with full day name and evening periods",
			token: "saturday a-C",
			want:  []Session{{Day: Saturday, Start: 10, End: 12}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeslot(tt.token)
			if err != nil {
				t.Fatalf("ParseTimeslot(%q) returned error: %v", tt.token, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTimeslot(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseTimeslotMalformed(t *testing.T) {
	for _, token := range []string{
		"",
		"   ",
		"M",
		"X3",
		"M0",
		"Mon 5-3",
		"Mon 10-11",
		"Funday 3",
		"Mon 3 4",
	} {
		if _, err := ParseTimeslot(token); !errors.Is(err, ErrMalformedTimeslot) {
			t.Errorf("ParseTimeslot(%q) error = %v, want ErrMalformedTimeslot", token, err)
		}
	}
}

func TestSessionOverlaps(t *testing.T) {
	a := Session{Day: Monday, Start: 2, End: 3}

	if !a.Overlaps(Session{Day: Monday, Start: 3, End: 4}) {
		t.Error("expected sessions sharing period 4 to overlap")
	}
	if a.Overlaps(Session{Day: Monday, Start: 4, End: 5}) {
		t.Error("expected adjacent sessions not to overlap")
	}
	if a.Overlaps(Session{Day: Tuesday, Start: 2, End: 3}) {
		t.Error("expected sessions on different days not to overlap")
	}
}

func TestSlotCode(t *testing.T) {
	if got := SlotCode(Thursday, 4); got != "Rn" {
		t.Errorf("SlotCode(Thursday, 4) = %q, want %q", got, "Rn")
	}
	if got := SlotCode(Monday, 99); got != "" {
		t.Errorf("SlotCode out of range = %q, want empty", got)
	}
}
