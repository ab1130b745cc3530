package version

import (
	"runtime/debug"
	"strings"
)

var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	IsRelease bool   `json:"is_release"`
	IsDirty   bool   `json:"is_dirty"`
}

const commitLen = 7

// Get resolves build information. Values set via ldflags take precedence
// over embedded VCS settings.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
	info.IsRelease = Version != "dev" && !strings.Contains(Version, "dirty")

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	vcs := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		vcs[s.Key] = s.Value
	}
	if info.GitCommit == "" {
		info.GitCommit = shortCommit(vcs["vcs.revision"])
	}
	if info.BuildTime == "" {
		info.BuildTime = vcs["vcs.time"]
	}
	info.IsDirty = vcs["vcs.modified"] == "true"
	return info
}

// Short renders Get as version[-commit][-dirty], as printed by --version.
func Short() string {
	info := Get()
	parts := []string{info.Version}
	if info.GitCommit != "" {
		parts = append(parts, info.GitCommit)
		if info.IsDirty {
			parts = append(parts, "dirty")
		}
	}
	return strings.Join(parts, "-")
}

func shortCommit(rev string) string {
	return rev[:min(len(rev), commitLen)]
}
