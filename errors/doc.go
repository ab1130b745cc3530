// Package errors provides the structured application error used across the
// service. AppError carries a machine-readable code, the HTTP status to
// answer with and a retryable flag. ToResponse renders the flat JSON envelope
// returned to clients, whose "error" member is always a human-readable string.
package errors
