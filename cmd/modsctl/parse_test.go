package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCommand(t *testing.T) {
	var out bytes.Buffer
	parseCmd.SetOut(&out)

	if err := parseCmd.RunE(parseCmd, []string{"M1M2", "Tue 5-6", "Q9"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := out.String()
	for _, want := range []string{"08:00-09:50", "13:20-15:10", "malformed"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestExportRejectsUnknownFormatBeforeWriting(t *testing.T) {
	output := filepath.Join(t.TempDir(), "timetable.pdf")
	if err := exportCmd.Flags().Set("output", output); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	t.Cleanup(func() { _ = exportCmd.Flags().Set("output", "") })

	err := exportCmd.RunE(exportCmd, []string{"https://nthumods.com/timetable?semester_1121=CS101"})
	if err == nil || !strings.Contains(err.Error(), "unsupported output type") {
		t.Fatalf("err = %v, want unsupported output type", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Errorf("output file exists after rejected export: %v", statErr)
	}
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{"plan.ics", ".ics", false},
		{"PLAN.XLSX", ".xlsx", false},
		{"plan.pdf", "", true},
		{"plan", "", true},
	}
	for _, tt := range tests {
		got, err := exportFormat(tt.output)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("exportFormat(%q) = %q, %v", tt.output, got, err)
		}
	}
}
