// Package util holds small helpers shared across the service: size parsing
// for config values, secret masking and truncation for logs, and a few
// generic conveniences.
package util
