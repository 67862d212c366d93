package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrMatchClosed is returned when booking a completed match.
	ErrMatchClosed = errors.New("match is no longer open for booking")

	ErrInvalidStatusTransition = errors.New("invalid payment status transition")
	ErrTicketAlreadyUsed       = errors.New("ticket already used")
	ErrBookingNotPaid          = errors.New("booking is not paid")

	// ErrIdentifierExhausted means every generated code collided.
	ErrIdentifierExhausted = errors.New("could not generate a unique identifier")
)

// ValidationError carries per-field messages for a rejected request.
// Nothing has been written when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
