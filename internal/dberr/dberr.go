// Package dberr handles MongoDB driver errors.
//
// Repositories tag driver errors with the collection they came from;
// HandleError turns them into client-facing HTTP errors (a duplicate key
// becomes a 400, a dropped connection a 503) without leaking driver text.
package dberr
