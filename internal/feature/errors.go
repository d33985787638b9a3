// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package feature

import "fmt"

// SchemaError reports a missing or misnamed required column, or a feature
// dimensionality mismatch at inference time. It carries enough detail for
// the caller to name the offending column to the user.
type SchemaError struct {
	// Column is the offending column name, if the error concerns one.
	Column string

	// Reason describes what was expected versus what was found.
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("schema error: %s", e.Reason)
	}
	return fmt.Sprintf("schema error: column %q: %s", e.Column, e.Reason)
}

// missingColumn builds the SchemaError for an absent required column.
func missingColumn(name, role string) *SchemaError {
	return &SchemaError{
		Column: name,
		Reason: fmt.Sprintf("%s column not found in dataset", role),
	}
}
