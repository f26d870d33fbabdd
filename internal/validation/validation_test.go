package validation

import (
	"errors"
	"testing"
)

func TestIsEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last+tag@sub.example.co.uk", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"user@.com", false},
		{"a@b.c", true},
		{"two@@example.com", false},
		{"spaced user@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsEmail(tt.input); got != tt.want {
				t.Errorf("IsEmail(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsPresent(t *testing.T) {
	if IsPresent("") {
		t.Error("empty string should not be present")
	}
	if IsPresent("   \t\n") {
		t.Error("whitespace should not be present")
	}
	if !IsPresent(" x ") {
		t.Error("padded text should be present")
	}
}

func TestRequiredMessage(t *testing.T) {
	tests := map[string]string{
		"name":    "Name is required",
		"message": "Message is required",
		"email":   "Email is required",
		"":        "This field is required",
	}
	for field, want := range tests {
		if got := RequiredMessage(field); got != want {
			t.Errorf("RequiredMessage(%q) = %q, want %q", field, got, want)
		}
	}
}

type sample struct {
	Name  string `validate:"required"`
	Email string `validate:"required,contains=@"`
}

func TestStruct(t *testing.T) {
	if err := Struct(sample{Name: "x", Email: "a@b"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	err := Struct(sample{Email: "nope"})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	fields := FailedFields(err)
	if len(fields) != 2 || fields[0] != "Name" || fields[1] != "Email" {
		t.Errorf("unexpected failed fields: %v", fields)
	}
}

func TestFailedFields_NonValidationError(t *testing.T) {
	if got := FailedFields(errors.New("boom")); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
