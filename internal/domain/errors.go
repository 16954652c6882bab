// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package domain

import "errors"

// ErrorType represents the semantic category of an error
type ErrorType int

const (
	ErrorTypeAuth                 ErrorType = iota // Token rejected, expired, or could not be signed
	ErrorTypeNetwork                               // Transport-level failure reaching the API
	ErrorTypeAPI                                   // Non-2xx, non-auth API response
	ErrorTypeDataIntegrity                         // Expected field missing from an API response
	ErrorTypeNoEligibleCandidates                  // Raffle pool is empty
	ErrorTypeNoMatchingMember                      // Raffle pool has no overlap with the member roster
	ErrorTypeValidation                            // Invalid configuration or input
	ErrorTypeInternal                              // Everything else
)

// DomainError represents an error with semantic type information
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error for wrapping
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the semantic type of an error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal // default fallback
}

// Error constructors for different types
func NewAuthError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeAuth, Message: message, Err: errors.Join(err...)}
}

func NewNetworkError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeNetwork, Message: message, Err: errors.Join(err...)}
}

func NewAPIError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeAPI, Message: message, Err: errors.Join(err...)}
}

func NewDataIntegrityError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeDataIntegrity, Message: message, Err: errors.Join(err...)}
}

func NewNoEligibleCandidatesError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeNoEligibleCandidates, Message: message, Err: errors.Join(err...)}
}

func NewNoMatchingMemberError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeNoMatchingMember, Message: message, Err: errors.Join(err...)}
}

func NewValidationError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeValidation, Message: message, Err: errors.Join(err...)}
}

func NewInternalError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeInternal, Message: message, Err: errors.Join(err...)}
}
