package errors

import (
	"strings"
	"testing"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"valid", "2020", 2020, false},
		{"surrounding spaces", " 1999 ", 1999, false},
		{"empty", "", 0, true},
		{"not a number", "20x0", 0, true},
		{"two digits", "99", 0, true},
		{"five digits", "20201", 0, true},
		{"negative", "-2020", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseYear(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseYear(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseYear(%q) = %d, want %d", tt.input, got, tt.want)
			}
			if err != nil && !Is(err, ErrCodeInvalidYear) {
				t.Errorf("ParseYear(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidYear)
			}
		})
	}
}

func TestValidateMake(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Toyota", false},
		{"with dash", "Mercedes-Benz", false},
		{"with space", "Rolls Royce", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"control char", "Toy\x01ota", true},
		{"newline", "Toy\nota", true},
		{"too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMake(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMake(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "default", false},
		{"dash and underscore", "my-car_2", false},
		{"empty", "", true},
		{"path traversal", "../etc", true},
		{"slash", "a/b", true},
		{"space", "my car", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProfile(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://new.api.nexusautotransport.com/api/vehicles", false},
		{"http://localhost:8080", false},
		{"", true},
		{"ftp://example.com", true},
		{"example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
