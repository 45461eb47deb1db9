// Package model holds the documents stored in MongoDB, the request
// payloads accepted at the API edge and the result shapes returned by
// write operations.
package model

import (
	"github.com/deppfellow/car-doctor/internal/errs"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// ParseRecordID parses a hex record id. Malformed ids are a 400.
func ParseRecordID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		code := "INVALID_RECORD_ID"
		return primitive.NilObjectID, errs.NewBadRequestError("invalid record id: "+hex, true, &code, nil, nil)
	}
	return id, nil
}
