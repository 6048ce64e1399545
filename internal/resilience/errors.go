// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// ErrorType represents different types of errors for handling strategies
type ErrorType int

const (
	ErrorTypeUnknown   ErrorType = iota
	ErrorTypeTransient           // Interrupted reads, files mid-rename
	ErrorTypePermanent           // Parse failures, permission denied
	ErrorTypeNotFound            // Missing table or registry file
)

// ClassifiedError wraps an error with type information
type ClassifiedError struct {
	Original  error
	Type      ErrorType
	Message   string
	Retryable bool
}

func (e *ClassifiedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Original.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

// IsRetryable returns whether this error should be retried
func (e *ClassifiedError) IsRetryable() bool {
	return e.Retryable
}

// NewTransientError creates a retryable classified error.
func NewTransientError(message string, cause error) *ClassifiedError {
	if cause == nil {
		cause = errors.New(message)
	}
	return &ClassifiedError{Original: cause, Type: ErrorTypeTransient, Message: message, Retryable: true}
}

// NewPermanentError creates a non-retryable classified error.
func NewPermanentError(message string, cause error) *ClassifiedError {
	if cause == nil {
		cause = errors.New(message)
	}
	return &ClassifiedError{Original: cause, Type: ErrorTypePermanent, Message: message, Retryable: false}
}

// ClassifyError categorizes an error for appropriate handling
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	if os.IsNotExist(err) || errors.Is(err, fs.ErrNotExist) {
		return &ClassifiedError{Original: err, Type: ErrorTypeNotFound, Retryable: false}
	}
	if os.IsPermission(err) {
		return &ClassifiedError{Original: err, Type: ErrorTypePermanent, Retryable: false}
	}

	// Interrupted or contended filesystem calls are worth a retry.
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EINTR, syscall.EAGAIN, syscall.EBUSY:
			return &ClassifiedError{Original: err, Type: ErrorTypeTransient, Retryable: true}
		}
	}

	return &ClassifiedError{Original: err, Type: ErrorTypeUnknown, Retryable: false}
}
