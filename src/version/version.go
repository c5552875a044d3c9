// Package version holds the SDK version reported to the API in the
// SDK-Version header and the SDKVersion query parameter.
package version

// Flag marks pre-release builds, e.g. "rc1". Release builds leave it empty.
const Flag = ""

var (
	// Version is the full version string reported to the API.
	Version = "1.0.0"

	// GitCommit is set at build time with
	// -ldflags "-X github.com/itblio/itbl/src/version.GitCommit=$(git rev-parse HEAD)"
	GitCommit string
)

func init() {
	Version = Full(Version, Flag, GitCommit)
}

// Full appends the flag and the first 8 characters of commit to base. Both
// are optional.
func Full(base, flag, commit string) string {
	v := base

	if flag != "" {
		v += "-" + flag
	}

	if len(commit) >= 8 {
		v += "-" + commit[:8]
	}

	return v
}
