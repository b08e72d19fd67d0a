// Package version provides version information for notes-dash.
package version

// Version is the version of notes-dash. This can be overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. This can be overridden at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" && Commit != "" {
		return Version + "+" + Commit
	}
	return Version
}

// UserAgent is sent by the HTTP client.
func UserAgent() string {
	return "notes-dash/" + String()
}
