package timetable

import (
	"reflect"
	"testing"
)

func TestShareLink(t *testing.T) {
	got := ShareLink("https://nthumods.com", "1121", []string{"CS101", "CS102"})
	want := "https://nthumods.com/timetable?semester_1121=CS101,CS102"
	if got != want {
		t.Errorf("ShareLink = %q, want %q", got, want)
	}
}

func TestLinksEscapeLikeEncodeURI(t *testing.T) {
	ids := []string{"11210CS  100100", "11210EE 200101"}
	links := NewLinks("https://nthumods.com/", "tropicalVibes", "1121", ids)

	wantParam := "semester_1121=11210CS%20%20100100,11210EE%20200101"
	if want := "https://nthumods.com/timetable?" + wantParam; links.Share != want {
		t.Errorf("Share = %q, want %q", links.Share, want)
	}
	if want := "https://nthumods.com/timetable/calendar.ics?" + wantParam; links.ICS != want {
		t.Errorf("ICS = %q, want %q", links.ICS, want)
	}
	if want := "webcal://nthumods.com/timetable/calendar.ics?" + wantParam; links.Webcal != want {
		t.Errorf("Webcal = %q, want %q", links.Webcal, want)
	}
	if want := "https://nthumods.com/timetable/image?theme=tropicalVibes&" + wantParam; links.Image != want {
		t.Errorf("Image = %q, want %q", links.Image, want)
	}
}

func TestEncodeURINonASCII(t *testing.T) {
	if got := encodeURI("中A"); got != "%E4%B8%ADA" {
		t.Errorf("encodeURI = %q", got)
	}
}

func TestParseSharedRoundTrip(t *testing.T) {
	ids := []string{"11210CS  100100", "11210EE 200101", "11210CS  100100"}
	link := ShareLink("https://nthumods.com", "1121", ids)

	sem, got, ok := ParseShareURL(link)
	if !ok {
		t.Fatalf("ParseShareURL(%q) failed", link)
	}
	if sem != "1121" {
		t.Errorf("semester = %q, want 1121", sem)
	}
	if !reflect.DeepEqual(got, ids) {
		t.Errorf("ids = %q, want %q", got, ids)
	}
}

func TestParseSharedRejectsBadInput(t *testing.T) {
	cases := []string{
		"",
		"theme=x",
		"semester_abc=CS101",
		"semester_=CS101",
		"semester_1121=%ZZ",
	}
	for _, q := range cases {
		if _, _, ok := ParseShared(q); ok {
			t.Errorf("ParseShared(%q) unexpectedly succeeded", q)
		}
	}

	sem, ids, ok := ParseShared("semester_1121=,,%20")
	if !ok || sem != "1121" || len(ids) != 0 {
		t.Errorf("ParseShared with empty list = %q %v %v", sem, ids, ok)
	}
}

func TestParseSharedKeepsReservedCharacters(t *testing.T) {
	ids := []string{"11210CS 101000", "A+B", "X&Y"}
	link := ImageLink("https://nthumods.com", "pastelColors", "1121", ids)

	sem, got, ok := ParseShareURL(link)
	if !ok || sem != "1121" {
		t.Fatalf("ParseShareURL(%q) = %q, %v", link, sem, ok)
	}
	if !reflect.DeepEqual(got, ids) {
		t.Errorf("ids = %q, want %q", got, ids)
	}
}
