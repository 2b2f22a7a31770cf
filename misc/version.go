// Package misc holds program identity, version information is set at build
// time with -ldflags "-X stylesplit/misc.version=... -X stylesplit/misc.gitHash=...".
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const appName = "stylesplit"

var (
	version = "dev"
	gitHash = ""
)

// GetAppName returns name of the program executable without extension, or
// default name when it cannot be determined.
func GetAppName() string {
	if len(os.Args) > 0 {
		name := filepath.Base(os.Args[0])
		name = strings.TrimSuffix(name, filepath.Ext(name))
		// tests are built into "<package>.test"
		if name != "" && name != "." && !strings.HasSuffix(os.Args[0], ".test") {
			return name
		}
	}
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns revision program was built from. When not set at build
// time it is taken from build information embedded by go toolchain.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
