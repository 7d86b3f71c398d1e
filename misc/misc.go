// Package misc keeps build time information about the program.
package misc

// Values are replaced at link time: -ldflags "-X ldx/misc.version=..."
var (
	appName = "ldx"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
