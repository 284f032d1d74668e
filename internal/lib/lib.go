// Package lib groups the infrastructure packages that do not belong to a
// single layer: background jobs on asynq, periodic jobs, the Resend email
// client, the Redis cache, local file storage, access tokens, metrics and
// small helpers.
package lib
