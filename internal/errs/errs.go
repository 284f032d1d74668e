// Package errs defines the error shapes returned to API clients.
//
// Every failure that leaves the HTTP layer is rendered as an HTTPError so
// clients always receive the same JSON body: a machine readable code, a
// message, the status, optional field errors and an optional action hint.
package errs
