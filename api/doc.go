// Package api serves POST /transcribe/: an uploaded MP3 is spooled to disk,
// transcribed, and turned into grocery items by the selected extractor.
package api
