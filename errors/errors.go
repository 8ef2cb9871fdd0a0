/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrConfiguration is returned when a required setting is missing or empty
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidDate is returned when the captured instant is not a usable calendar date
	ErrInvalidDate = errors.New("invalid date")

	// ErrLookup is returned when the existence query against the note store fails
	ErrLookup = errors.New("note lookup failed")

	// ErrCreation is returned when inserting the daily note fails
	ErrCreation = errors.New("note creation failed")

	// ErrAlreadyClaimed is returned when another invocation already claimed the day
	ErrAlreadyClaimed = errors.New("day already claimed")
)

// ConfigurationError names the first required setting that was missing, or the
// setting whose value could not be used when Err is set
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration for %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("missing required environment variable: %s", e.Key)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// InvalidDateError represents a clock reading that cannot be rendered as a date
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %s", e.Value)
}

func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// LookupError wraps a failed existence query for a title
type LookupError struct {
	Title string
	Err   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup of note %q failed: %v", e.Title, e.Err)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// CreationError wraps a failed page creation for a title
type CreationError struct {
	Title string
	Err   error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("creation of note %q failed: %v", e.Title, e.Err)
}

func (e *CreationError) Is(target error) bool {
	return target == ErrCreation
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// AlreadyClaimedError represents a lost race for the day's claim
type AlreadyClaimedError struct {
	Day string
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("daily note for %s already claimed by another invocation", e.Day)
}

func (e *AlreadyClaimedError) Is(target error) bool {
	return target == ErrAlreadyClaimed
}

// Helper functions for creating errors

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(key string) error {
	return &ConfigurationError{Key: key}
}

// NewInvalidConfigurationError creates a ConfigurationError for a setting that is present but unusable
func NewInvalidConfigurationError(key string, err error) error {
	return &ConfigurationError{Key: key, Err: err}
}

// NewInvalidDateError creates a new InvalidDateError
func NewInvalidDateError(value string) error {
	return &InvalidDateError{Value: value}
}

// NewLookupError creates a new LookupError
func NewLookupError(title string, err error) error {
	return &LookupError{Title: title, Err: err}
}

// NewCreationError creates a new CreationError
func NewCreationError(title string, err error) error {
	return &CreationError{Title: title, Err: err}
}

// NewAlreadyClaimedError creates a new AlreadyClaimedError
func NewAlreadyClaimedError(day string) error {
	return &AlreadyClaimedError{Day: day}
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsInvalidDate checks if an error is an invalid date error
func IsInvalidDate(err error) bool {
	return errors.Is(err, ErrInvalidDate)
}

// IsLookup checks if an error is a lookup error
func IsLookup(err error) bool {
	return errors.Is(err, ErrLookup)
}

// IsCreation checks if an error is a creation error
func IsCreation(err error) bool {
	return errors.Is(err, ErrCreation)
}

// IsAlreadyClaimed checks if an error is an already claimed error
func IsAlreadyClaimed(err error) bool {
	return errors.Is(err, ErrAlreadyClaimed)
}

// Kind returns a short name for the error variant, used as a log field.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsConfiguration(err):
		return "ConfigurationError"
	case IsInvalidDate(err):
		return "InvalidDateError"
	case IsLookup(err):
		return "LookupError"
	case IsCreation(err):
		return "CreationError"
	case IsAlreadyClaimed(err):
		return "AlreadyClaimedError"
	default:
		return "UnknownError"
	}
}
