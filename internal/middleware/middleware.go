// Package middleware holds the echo middleware: request ids, the request
// scoped logger, New Relic tracing, Prometheus metrics, authentication,
// role checks, rate limiting and the global error handler.
package middleware
