// Package errors provides the structured error type shared by the compose
// packages. Every error carries a machine-readable ErrorCode so callers can
// branch on the failure class with IsCode instead of matching messages.
//
// Errors returned by pipeline steps are never converted to AppError; they
// reach the caller exactly as the step produced them.
package errors
