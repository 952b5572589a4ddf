// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

package wazuh

import (
	"errors"
	"fmt"
)

// Common error types for manager client operations.
// These errors should be checked using errors.Is().
var (
	// ErrAuthentication indicates that the manager rejected our credentials
	// or that a token could not be obtained.
	ErrAuthentication = errors.New("authentication failed")

	// ErrUpstream indicates that the manager API returned an error response
	// or could not be reached at all.
	ErrUpstream = errors.New("upstream request failed")
)

// APIError describes a non-2xx response from the manager API.
// It wraps ErrUpstream so callers can match the whole class with errors.Is.
type APIError struct {
	// StatusCode is the HTTP status the manager returned.
	StatusCode int
	// Title is the short error title from the response body, if present.
	Title string
	// Detail is the longer error description from the response body, if present.
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Title != "" && e.Detail != "":
		return fmt.Sprintf("manager returned %d: %s: %s", e.StatusCode, e.Title, e.Detail)
	case e.Title != "":
		return fmt.Sprintf("manager returned %d: %s", e.StatusCode, e.Title)
	default:
		return fmt.Sprintf("manager returned %d", e.StatusCode)
	}
}

// Unwrap lets errors.Is(err, ErrUpstream) match any APIError.
func (*APIError) Unwrap() error {
	return ErrUpstream
}
