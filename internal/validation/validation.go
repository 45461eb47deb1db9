// Package validation binds request data into payload structs and turns
// validator failures into field errors the client can act on.
//
// Payloads declare their rules with `validate` struct tags and
// implement Validatable.
package validation
