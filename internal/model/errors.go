// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package model

import (
	"fmt"
	"strings"
)

// InvalidTargetError reports a non-binary or missing label encountered
// during training or splitting.
type InvalidTargetError struct {
	// Reason describes the violation (missing label, non-binary value,
	// wrong cardinality).
	Reason string
}

// Error implements the error interface.
func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target: %s", e.Reason)
}

// UnsupportedAlgorithmError reports an unknown algorithm name.
type UnsupportedAlgorithmError struct {
	// Algorithm is the rejected name as supplied by the caller.
	Algorithm string
}

// Error implements the error interface.
func (e *UnsupportedAlgorithmError) Error() string {
	names := make([]string, len(Algorithms()))
	for i, a := range Algorithms() {
		names[i] = string(a)
	}
	return fmt.Sprintf("unsupported algorithm %q (supported: %s)", e.Algorithm, strings.Join(names, ", "))
}
