package version

// Version is the semver of the current build.
var Version = "0.3.1"

// DevVersion is the development version suffix applied outside prod mode.
var DevVersion = Version + "-dev"

func GetCurrentVersion(mode string) string {
	if mode == "prod" {
		return Version
	}
	return DevVersion
}
