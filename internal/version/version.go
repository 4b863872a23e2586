package version

import (
	"runtime/debug"
	"strings"
)

// Set by the release pipeline via -ldflags; the placeholders tell
// fromBuildInfo which fields it may still fill in.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(bi)
	}
}

// fromBuildInfo fills in whatever the linker left at its placeholder. A
// `go install module@version` build carries the module version and VCS
// stamps in build info even though no -ldflags were passed.
func fromBuildInfo(bi *debug.BuildInfo) {
	if Version == "dev" {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			Version = strings.TrimPrefix(v, "v")
		}
	}
	if Commit == "none" {
		if rev := buildSetting(bi, "vcs.revision"); rev != "" {
			if len(rev) > 7 {
				rev = rev[:7]
			}
			Commit = rev
		}
	}
	if Date == "unknown" {
		if t := buildSetting(bi, "vcs.time"); t != "" {
			Date = t
		}
	}
}

func buildSetting(bi *debug.BuildInfo, key string) string {
	for _, s := range bi.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
