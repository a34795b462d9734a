// Package validate provides configuration validation utilities for spobatch
// components.
//
// This file implements common validation patterns used across multiple config
// packages to ensure consistency and reduce duplication. ValidateRequiredString
// goes through the go-playground/validator library; ValidatePositiveTimeout is
// a plain comparison.
package validate

import (
	"fmt"
	"time"
)

// ValidateRequiredString validates that a string field is not empty.
// Uses the validator library for consistent error handling across config validation.
//
// Critical for ensuring required configuration fields like site roots and tenant
// identifiers are properly specified before batch dispatch begins. Prevents
// runtime failures from missing essential configuration parameters.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidatePositiveTimeout validates that a timeout duration is positive (> 0).
// Essential for ensuring timeout configurations don't cause infinite waits or
// immediate failures during HTTP dispatch.
func ValidatePositiveTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}
