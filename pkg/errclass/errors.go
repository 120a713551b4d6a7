// Package errclass holds the error classes Nexa reports to users and scripts.
// Each class has a fixed code such as E_NOT_FOUND; individual errors carry the
// class code plus a message naming the asset, user or file involved.
package errclass

import "fmt"

// NexaError is an error tagged with a class code. Two NexaErrors are equal
// under errors.Is when their codes match, whatever their messages say.
type NexaError struct {
	Code    string
	Message string
}

func newClass(code string) *NexaError {
	return &NexaError{Code: code}
}

func (e *NexaError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func (e *NexaError) Is(target error) bool {
	other, ok := target.(*NexaError)
	if !ok {
		return false
	}
	return other.Code == e.Code
}

// WithMessage copies the class with msg attached. The class itself is left
// untouched.
func (e *NexaError) WithMessage(msg string) *NexaError {
	return &NexaError{Code: e.Code, Message: msg}
}

// WithMessagef is WithMessage with fmt.Sprintf formatting.
func (e *NexaError) WithMessagef(format string, args ...any) *NexaError {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// Lookups and input validation.
var (
	ErrNotFound     = newClass("E_NOT_FOUND")
	ErrInvalidAsset = newClass("E_INVALID_ASSET")
	ErrInvalidUser  = newClass("E_INVALID_USER")
	ErrNoData       = newClass("E_NO_DATA")
)

// Login.
var ErrInvalidCredentials = newClass("E_INVALID_CREDENTIALS")

// Storage and the audit journal.
var (
	ErrPersistenceUnavailable = newClass("E_PERSISTENCE_UNAVAILABLE")
	ErrAuditChainBroken       = newClass("E_AUDIT_CHAIN_BROKEN")
)

// Description assistant.
var ErrGenerationFailed = newClass("E_GENERATION_FAILED")
