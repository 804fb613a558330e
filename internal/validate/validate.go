// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// =============================================================================
// RESULTS
// =============================================================================

// Result is the outcome of applying a rule (or rule chain) to a value.
type Result struct {
	Valid   bool
	Message string
}

// ok is the shared success result.
var ok = Result{Valid: true}

func fail(message string) Result {
	return Result{Valid: false, Message: message}
}

// =============================================================================
// RULES
// =============================================================================

// Rule checks a single string value.
type Rule func(value string) Result

// emailPattern is a conservative local@domain.tld check. It is not RFC 5322;
// it matches what the signup form is willing to accept.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required fails on empty or whitespace-only input.
func Required(value string) Result {
	if strings.TrimSpace(value) == "" {
		return fail("This field is required")
	}
	return ok
}

// Email checks the value against a conservative address pattern.
func Email(value string) Result {
	if !emailPattern.MatchString(value) {
		return fail("Please enter a valid email address")
	}
	return ok
}

// MinLength requires at least n characters.
func MinLength(n int) Rule {
	return func(value string) Result {
		if len([]rune(value)) < n {
			return fail(fmt.Sprintf("Must be at least %d characters", n))
		}
		return ok
	}
}

// MaxLength allows at most n characters.
func MaxLength(n int) Rule {
	return func(value string) Result {
		if len([]rune(value)) > n {
			return fail(fmt.Sprintf("Must be no more than %d characters", n))
		}
		return ok
	}
}

// Pattern gates the value on an arbitrary regular expression with a custom
// failure message.
func Pattern(re *regexp.Regexp, message string) Rule {
	return func(value string) Result {
		if !re.MatchString(value) {
			return fail(message)
		}
		return ok
	}
}

// =============================================================================
// FIELD AND FORM VALIDATION
// =============================================================================

// ValidateField applies rules in order and returns the first failure, or
// success if every rule passes.
func ValidateField(value string, rules []Rule) Result {
	for _, rule := range rules {
		if res := rule(value); !res.Valid {
			return res
		}
	}
	return ok
}

// FormResult aggregates per-field failures for a whole form.
type FormResult struct {
	IsValid bool
	Errors  map[string]string
}

// ValidateForm validates every declared field, even when earlier fields
// have already failed. Missing form values validate as empty strings.
func ValidateForm(formData map[string]string, rulesByField map[string][]Rule) FormResult {
	result := FormResult{IsValid: true, Errors: make(map[string]string)}

	for field, rules := range rulesByField {
		if res := ValidateField(formData[field], rules); !res.Valid {
			result.IsValid = false
			result.Errors[field] = res.Message
		}
	}
	return result
}
