// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate provides composable form field validation rules.
//
// Rules are pure predicates; a field is validated by applying its rules in
// order and reporting the first failure. Forms validate every declared
// field independently so the user sees all problems at once, not just the
// first.
//
// # Key Types
//
//   - Rule: A single predicate over a field value
//   - FormResult: Per-field error messages plus an overall validity flag
//
// # Usage
//
//	result := validate.ValidateForm(
//	    map[string]string{"username": u, "password": p},
//	    map[string][]validate.Rule{
//	        "username": {validate.Required},
//	        "password": {validate.Required, validate.MinLength(6)},
//	    },
//	)
//	if !result.IsValid {
//	    for field, msg := range result.Errors { ... }
//	}
package validate
