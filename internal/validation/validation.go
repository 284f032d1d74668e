// Package validation binds request data and turns validator failures
// into field level errors the client can act on.
package validation
