// Package app assembles the voicelist service from configuration.
package app
