// Package version reports what binary is running. Release builds set the
// variables with -ldflags; local builds fall back to the VCS stamps the Go
// toolchain embeds.
//
//	go build -ldflags "-X github.com/kbukum/voicelist/version.Version=1.2.0" ./cmd/voicelist
package version
