// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors. Business-rule failures carry fixed message
// text that callers and tests match against.
var (
	ErrInputValidation   = errors.New("input validation failed")
	ErrInsufficientFunds = errors.New("insufficient funds for withdrawal")
	ErrInvalidAdjustment = errors.New("invalid adjustment amount")
	ErrTradeNotFound     = errors.New("trade not found")
	ErrTradeClosed       = errors.New("trade already closed")
	ErrDataNotFound      = errors.New("data not found")
	ErrDatabaseError     = errors.New("database error")
	ErrConfigInvalid     = errors.New("invalid configuration")
)

// ValidationError represents a value-level validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// RiskError represents a risk-limit violation.
type RiskError struct {
	Rule    string
	Current float64
	Limit   float64
	Message string
}

func (e *RiskError) Error() string {
	return fmt.Sprintf("risk violation [%s]: %s (current: %.2f, limit: %.2f)", e.Rule, e.Message, e.Current, e.Limit)
}

// NewRiskError creates a new RiskError.
func NewRiskError(rule string, current, limit float64, message string) *RiskError {
	return &RiskError{
		Rule:    rule,
		Current: current,
		Limit:   limit,
		Message: message,
	}
}

// StoreError represents a persistence-layer error.
type StoreError struct {
	Entity  string
	ID      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store error [%s] %s: %s: %v", e.Entity, e.ID, e.Message, e.Err)
	}
	return fmt.Sprintf("store error [%s] %s: %s", e.Entity, e.ID, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, id, message string, err error) *StoreError {
	return &StoreError{
		Entity:  entity,
		ID:      id,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
