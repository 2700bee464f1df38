package errors

import (
	"strings"
	"testing"
)

func TestValidateDescriptorID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"v2 id", "DNA_001", false},
		{"uuid", "6ba7b810-9dad-51d1-80b4-00c04fd430c8", false},
		{"korean", "스타일_07", false},
		{"empty", "", true},
		{"control char", "DNA\n001", true},
		{"too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescriptorID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDescriptorID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative file", "out/design.png", false},
		{"absolute file", "/tmp/design.png", false},
		{"empty", "", true},
		{"directory", "out/", true},
		{"null byte", "out\x00.png", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"DNA_001", "DNA_001"},
		{"a/b\\c", "a_b_c"},
		{"../../etc", "etc"},
		{"네온 스타일", "untitled"},
		{"", "untitled"},
	}

	for _, tt := range tests {
		if got := SafeFileName(tt.in); got != tt.want {
			t.Errorf("SafeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
