package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotAuthorized     = errors.New("user is not VIP and cannot have watchdog")
	ErrDuplicateCriteria = errors.New("watchdog with the same criteria already exists")
	ErrValidation        = errors.New("validation failed")
	ErrDispatchFailure   = errors.New("notification dispatch failed")
	ErrStoreFailure      = errors.New("store unavailable")
	ErrWatchdogNotFound  = errors.New("watchdog not found")
	ErrForbidden         = errors.New("insufficient permissions")
)

// ValidationError carries per-field messages. It matches ErrValidation under errors.Is.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
