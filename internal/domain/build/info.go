// Package build describes the running binary.
package build

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// RepoURL returns the project repository URL.
func RepoURL() string {
	return "https://github.com/bnema/medusa"
}
