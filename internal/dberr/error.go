package dberr

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Code classifies a driver error.
type Code int

const (
	Other Code = iota
	NotFound
	DuplicateKey
	DocumentValidation
	Timeout
	Unavailable
)

func (c Code) String() string {
	switch c {
	case NotFound:
		return "not_found"
	case DuplicateKey:
		return "duplicate_key"
	case DocumentValidation:
		return "document_validation"
	case Timeout:
		return "timeout"
	case Unavailable:
		return "unavailable"
	default:
		return "other"
	}
}

// documentValidationFailure is the server code for a rejected
// $jsonSchema validator.
const documentValidationFailure = 121

// Error is a driver error annotated with the collection and operation
// that produced it.
type Error struct {
	Code       Code
	Collection string
	Operation  string
	driverErr  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Collection, e.driverErr)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// Wrap annotates err with its collection and operation. nil stays nil.
func Wrap(err error, collection, operation string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:       Classify(err),
		Collection: collection,
		Operation:  operation,
		driverErr:  err,
	}
}

// Classify maps a driver error onto a Code.
func Classify(err error) Code {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Code
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return NotFound
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey
	case hasServerCode(err, documentValidationFailure):
		return DocumentValidation
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return Timeout
	case errors.Is(err, mongo.ErrClientDisconnected), mongo.IsNetworkError(err):
		return Unavailable
	}
	return Other
}

func hasServerCode(err error, code int) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorCode(code)
	}
	return false
}
