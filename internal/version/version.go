package version

import "runtime/debug"

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
)

type Info struct {
	Version string
	Commit  string
}

// Resolve fills in unset build metadata from the module build info, so
// plain `go install` builds still report something useful.
func Resolve() Info {
	resolved := Info{Version: Version, Commit: Commit}

	if info, ok := debug.ReadBuildInfo(); ok {
		if resolved.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolved.Version = info.Main.Version
		}
		if resolved.Commit == "" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					resolved.Commit = s.Value
					break
				}
			}
		}
	}

	if resolved.Version == "" {
		resolved.Version = "dev"
	}

	return resolved
}

func String() string {
	info := Resolve()
	if info.Commit == "" {
		return info.Version
	}
	return info.Version + " (" + shortCommit(info.Commit) + ")"
}

func shortCommit(commit string) string {
	if len(commit) <= 12 {
		return commit
	}
	return commit[:12]
}
