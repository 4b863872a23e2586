// Package version exposes build metadata injected at link time, with
// runtime/debug.BuildInfo as a fallback for `go install` builds.
package version
