package errors

import (
	"strings"
	"testing"
)

func TestValidateCrateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"serde", false},
		{"serde_json", false},
		{"tokio-util", false},
		{"_private", false},
		{"", true},
		{"../etc", true},
		{"foo/bar", true},
		{"foo bar", true},
		{"foo;rm", true},
		{strings.Repeat("a", 65), false},
		{strings.Repeat("a", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCrateName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCrateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPackage)
			}
		})
	}
}

func TestValidateCrateVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.0.0", false},
		{"0.3.0-alpha.1", false},
		{"1.2.3+build.5", false},
		{"", true},
		{"v1.0.0", true},
		{"1.0", true},
		{"1.0.0/../../x", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := ValidateCrateVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCrateVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"crates/bar", false},
		{"bar", false},
		{"a..b", false},
		{"", true},
		{"/abs", true},
		{"../up", true},
		{"crates/../../up", true},
		{"win\\path", true},
		{"with space", true},
		{"tab\there", true},
		{"crates/foo-bar_2.0", false},
		{"crates/x;rm", true},
		{"crates/$(id)", true},
		{"crates/`id`", true},
		{"a&b", true},
		{"a|b", true},
		{"a'b", true},
		{"a\"b", true},
		{"a*b", true},
		{"a>b", true},
		{"crates/é", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
