package marqant

import (
	"errors"
	"strings"
	"testing"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		ts    string
		orig  int
		comp  int
		flags []string
	}{
		{"no flags", "MARQANT 1700000000 120 80", "1700000000", 120, 80, nil},
		{"one flag", "MARQANT 0 10 14 -zlib", "0", 10, 14, []string{"-zlib"}},
		{"several flags", "MARQANT 42 5 9 -zlib -semantic -std:team-v1", "42", 5, 9, []string{"-zlib", "-semantic", "-std:team-v1"}},
		{"unrecognized flag carried", "MARQANT 0 1 5 -future", "0", 1, 5, []string{"-future"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr, err := parseHeader(tt.line)
			if err != nil {
				t.Fatalf("parseHeader(%q) error: %v", tt.line, err)
			}
			if hdr.Timestamp != tt.ts {
				t.Errorf("timestamp = %q, want %q", hdr.Timestamp, tt.ts)
			}
			if hdr.OriginalSize != tt.orig {
				t.Errorf("original size = %d, want %d", hdr.OriginalSize, tt.orig)
			}
			if hdr.CompressedSize != tt.comp {
				t.Errorf("compressed size = %d, want %d", hdr.CompressedSize, tt.comp)
			}
			if len(hdr.Flags) != len(tt.flags) {
				t.Fatalf("flags = %v, want %v", hdr.Flags, tt.flags)
			}
			for i := range tt.flags {
				if hdr.Flags[i] != tt.flags[i] {
					t.Errorf("flags = %v, want %v", hdr.Flags, tt.flags)
				}
			}
		})
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"wrong tag", "MARKDOWN 0 10 14"},
		{"too few fields", "MARQANT 0 10"},
		{"bad original size", "MARQANT 0 ten 14"},
		{"bad compressed size", "MARQANT 0 10 x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseHeader(tt.line)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("parseHeader(%q) = %v, want ErrFormat", tt.line, err)
			}
		})
	}
}

func TestHeaderLine(t *testing.T) {
	hdr := &Header{Timestamp: "99", OriginalSize: 7, CompressedSize: 11}
	if got := hdr.line(); got != "MARQANT 99 7 11" {
		t.Errorf("line() = %q", got)
	}

	hdr.Flags = []string{"-zlib", "-std:team-v1"}
	if got := hdr.line(); got != "MARQANT 99 7 11 -zlib -std:team-v1" {
		t.Errorf("line() with flags = %q", got)
	}

	// A formatted header must parse back to the same values.
	back, err := parseHeader(hdr.line())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if back.line() != hdr.line() {
		t.Errorf("reparse changed header: %q vs %q", back.line(), hdr.line())
	}
}

func TestHeaderFlagHelpers(t *testing.T) {
	hdr := &Header{Flags: []string{"-zlib", "-std:team-v1", "-other"}}

	if !hdr.hasFlag(FlagZlib) {
		t.Error("hasFlag(-zlib) = false")
	}
	if hdr.hasFlag(FlagSemantic) {
		t.Error("hasFlag(-semantic) = true")
	}
	// Flag matching is exact, not prefix.
	if hdr.hasFlag("-z") {
		t.Error("hasFlag(-z) matched a prefix")
	}
	if got := hdr.stdID(); got != "team-v1" {
		t.Errorf("stdID() = %q, want %q", got, "team-v1")
	}
	if got := (&Header{}).stdID(); got != "" {
		t.Errorf("stdID() on flagless header = %q", got)
	}
}

func TestParseHeaderErrorMentionsShape(t *testing.T) {
	_, err := parseHeader("NOPE 1 2 3")
	if err == nil || !strings.Contains(err.Error(), "MARQANT") {
		t.Errorf("error should name the expected tag, got %v", err)
	}

	_, err = parseHeader("MARQANT 1 2")
	if err == nil || !strings.Contains(err.Error(), "4") {
		t.Errorf("error should name the required field count, got %v", err)
	}
}
