// Package misc holds program identity.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "cssmin"

type buildInfo struct {
	version string
	hash    string
}

var readBuildInfo = sync.OnceValue(func() buildInfo {
	bi := buildInfo{version: "(devel)", hash: "unknown"}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return bi
	}
	if v := info.Main.Version; v != "" {
		bi.version = v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			bi.hash = s.Value
			if len(bi.hash) > 12 {
				bi.hash = bi.hash[:12]
			}
		}
	}
	return bi
})

func GetAppName() string {
	return appName
}

// GetVersion returns module version recorded in the binary.
func GetVersion() string {
	return readBuildInfo().version
}

// GetGitHash returns shortened VCS revision the binary was built from.
func GetGitHash() string {
	return readBuildInfo().hash
}
