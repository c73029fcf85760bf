package domain

import "errors"

var (
	// ErrEmptyQuestion indicates a blank question was submitted
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrNoSelection indicates an upload was triggered without a file
	ErrNoSelection = errors.New("no file selected")
	// ErrCancelled indicates the user declined a confirmation
	ErrCancelled = errors.New("cancelled by user")
)

// TransportError means the request could not be completed or its response could not be decoded
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Op + ": transport failure"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError means the response decoded but reported failure through a
// success=false or error field
type ApplicationError struct {
	Op      string
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return e.Op + " failed"
	}
	return e.Message
}

// IsTransport reports whether err is a transport failure
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsApplication reports whether err is an application-level failure
func IsApplication(err error) bool {
	var ae *ApplicationError
	return errors.As(err, &ae)
}
