// Package lib holds infrastructure clients that are not part of the HTTP
// request path: background jobs and transactional e-mail.
package lib
