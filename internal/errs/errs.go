// Package errs defines the error types the API returns to clients.
//
// Every failure a handler can produce ends up as an *HTTPError so the
// client always receives the same JSON shape: a machine code, a message,
// the status and optional field errors.
package errs
