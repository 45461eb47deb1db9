package dberr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/car-doctor/internal/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// generateErrorCode builds codes like ORDER_ALREADY_EXISTS from the
// collection name.
func generateErrorCode(collection string, code Code) string {
	if collection == "" {
		collection = "RECORD"
	}

	domain := strings.ToUpper(collection)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch code {
	case NotFound:
		action = "NOT_FOUND"
	case DuplicateKey:
		action = "ALREADY_EXISTS"
	case DocumentValidation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func getEntityName(collection string) string {
	if collection == "" {
		return "record"
	}
	entity := collection
	if strings.HasSuffix(entity, "s") && len(entity) > 1 {
		entity = entity[:len(entity)-1]
	}
	return humanizeText(entity)
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts any error into an *errs.HTTPError. HTTP errors
// pass through unchanged.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if errors.Is(err, primitive.ErrInvalidHex) {
		code := "INVALID_RECORD_ID"
		return errs.NewBadRequestError("invalid record id", true, &code, nil, nil)
	}

	collection := ""
	var dbErr *Error
	if errors.As(err, &dbErr) {
		collection = dbErr.Collection
	}

	entity := getEntityName(collection)
	errorCode := generateErrorCode(collection, Classify(err))

	switch Classify(err) {
	case NotFound:
		return errs.NewNotFoundError(fmt.Sprintf("%s not found", entity), true, &errorCode)

	case DuplicateKey:
		return errs.NewBadRequestError(fmt.Sprintf("A %s with this identifier already exists", entity), true, &errorCode, nil, nil)

	case DocumentValidation:
		return errs.NewBadRequestError(fmt.Sprintf("The %s does not meet required conditions", entity), true, &errorCode, nil, nil)

	case Timeout, Unavailable:
		return errs.NewServiceUnavailableError("Database is temporarily unavailable")
	}

	return errs.NewInternalServerError()
}
