package domain

import "fmt"

// TransportError indicates that no response was received from the server
// (DNS failure, refused connection, timeout). It wraps the underlying cause.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnstructuredServerError indicates a non-success response whose body could
// not be decoded as a structured error. Body holds the raw body rendering
// and is empty when the response carried no body.
type UnstructuredServerError struct {
	StatusCode int
	Body       string
}

func (e *UnstructuredServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// ServerError indicates a structured error response whose status and code
// have no specific mapping.
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotFoundError indicates a 404 response whose error code is not one of the
// known element-not-found codes. ResourceID identifies the missing resource
// when the server supplied it.
type NotFoundError struct {
	ResourceID string
	Message    string
}

func (e *NotFoundError) Error() string { return e.Message }

// ElementNotFoundError indicates a 404 response for a named graph element
// (user, group, entity type, or entity).
type ElementNotFoundError struct {
	ElementType string
	Element     string
	Message     string
}

func (e *ElementNotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input supplied by the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrTransport creates a TransportError wrapping cause.
func ErrTransport(cause error, format string, args ...interface{}) *TransportError {
	return &TransportError{Message: fmt.Sprintf(format, args...), Err: cause}
}

// ErrNotFound creates a NotFoundError for the given resource identifier.
func ErrNotFound(resourceID, format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{ResourceID: resourceID, Message: fmt.Sprintf(format, args...)}
}

// ErrElementNotFound creates an ElementNotFoundError for the given element.
func ErrElementNotFound(elementType, element, format string, args ...interface{}) *ElementNotFoundError {
	return &ElementNotFoundError{
		ElementType: elementType,
		Element:     element,
		Message:     fmt.Sprintf(format, args...),
	}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
