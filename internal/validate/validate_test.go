// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"regexp"
	"testing"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"value present", "alice", true},
		{"empty", "", false},
		{"whitespace only", "   \t ", false},
		{"value with surrounding spaces", "  x  ", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Required(tc.input)
			if res.Valid != tc.valid {
				t.Errorf("Required(%q).Valid = %v, want %v", tc.input, res.Valid, tc.valid)
			}
			if !res.Valid && res.Message != "This field is required" {
				t.Errorf("message = %q", res.Message)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"a@b.com", "user.name@example.co.uk", "x+tag@host.io"}
	invalid := []string{"not-an-email", "missing@tld", "@nodomain.com", "two words@x.com", ""}

	for _, v := range valid {
		if res := ValidateField(v, []Rule{Email}); !res.Valid {
			t.Errorf("Email(%q) invalid: %s", v, res.Message)
		}
	}
	for _, v := range invalid {
		res := ValidateField(v, []Rule{Email})
		if res.Valid {
			t.Errorf("Email(%q) valid, want invalid", v)
		}
		if res.Message == "" {
			t.Errorf("Email(%q) has no descriptive message", v)
		}
	}
}

func TestLengthRules(t *testing.T) {
	if res := MinLength(6)("ab"); res.Valid || res.Message != "Must be at least 6 characters" {
		t.Errorf("MinLength(6)(\"ab\") = %+v", res)
	}
	if res := MinLength(6)("abcdef"); !res.Valid {
		t.Errorf("MinLength(6) rejected exact length")
	}
	if res := MaxLength(3)("abcd"); res.Valid || res.Message != "Must be no more than 3 characters" {
		t.Errorf("MaxLength(3)(\"abcd\") = %+v", res)
	}
	// Rune-counted, not byte-counted.
	if res := MinLength(3)("héé"); !res.Valid {
		t.Errorf("MinLength counts bytes, want runes")
	}
}

func TestPattern(t *testing.T) {
	digits := Pattern(regexp.MustCompile(`^\d+$`), "Digits only")
	if res := digits("123"); !res.Valid {
		t.Errorf("Pattern rejected matching value")
	}
	if res := digits("12a"); res.Valid || res.Message != "Digits only" {
		t.Errorf("Pattern(\"12a\") = %+v", res)
	}
}

func TestValidateField_ShortCircuits(t *testing.T) {
	res := ValidateField("", []Rule{Required, MinLength(6)})
	if res.Valid {
		t.Fatal("expected failure")
	}
	// First failing rule wins.
	if res.Message != "This field is required" {
		t.Errorf("message = %q, want required message", res.Message)
	}
}

func TestValidateForm_AggregatesAllFailures(t *testing.T) {
	res := ValidateForm(
		map[string]string{"username": "", "password": "ab"},
		map[string][]Rule{
			"username": {Required},
			"password": {Required, MinLength(6)},
		},
	)

	if res.IsValid {
		t.Fatal("IsValid = true, want false")
	}
	if got := res.Errors["username"]; got != "This field is required" {
		t.Errorf("Errors[username] = %q", got)
	}
	if got := res.Errors["password"]; got != "Must be at least 6 characters" {
		t.Errorf("Errors[password] = %q", got)
	}
	if len(res.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2", len(res.Errors))
	}
}

func TestValidateForm_AllFieldsChecked(t *testing.T) {
	// A failure in one field must not skip validation of the others.
	res := ValidateForm(
		map[string]string{"a": "", "b": "", "c": "fine"},
		map[string][]Rule{
			"a": {Required},
			"b": {Required},
			"c": {Required},
		},
	)
	if len(res.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2", len(res.Errors))
	}
	if _, found := res.Errors["c"]; found {
		t.Error("passing field reported an error")
	}
}

func TestValidateForm_AllValid(t *testing.T) {
	res := ValidateForm(
		map[string]string{"email": "a@b.com"},
		map[string][]Rule{"email": {Required, Email}},
	)
	if !res.IsValid || len(res.Errors) != 0 {
		t.Errorf("ValidateForm() = %+v, want valid with no errors", res)
	}
}
