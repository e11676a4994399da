// Package config loads gesturekit tool configuration from TOML files and
// watches them for live reloads.
//
// A missing file is not an error: Load returns the defaults, so the tools
// run unconfigured out of the box. A Watcher re-reads the file when it
// changes on disk, debouncing editor write bursts, and hands the freshly
// validated Config to a callback.
package config
