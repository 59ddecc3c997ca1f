package parser

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"INFO", LevelInfo, false},
		{"WARNING", LevelWarning, false},
		{"ERROR", LevelError, false},
		{"DEBUG", "", true},
		{"FATAL", "", true},
		{"info", "", true}, // case sensitive
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"GET", MethodGet, false},
		{"POST", MethodPost, false},
		{"PUT", MethodPut, false},
		{"PATCH", MethodPatch, false},
		{"DELETE", MethodDelete, false},
		{"HEAD", "", true},
		{"OPTIONS", "", true},
		{"get", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogRecord_IsZero(t *testing.T) {
	var rec LogRecord
	if !rec.IsZero() {
		t.Error("empty record should be zero")
	}

	level := LevelInfo
	rec.Level = &level
	if rec.IsZero() {
		t.Error("record with a level should not be zero")
	}
}
