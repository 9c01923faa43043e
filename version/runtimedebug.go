package version

import (
	"fmt"
	"runtime/debug"
)

// BuildInfo returns the build information embedded in the running binary.
func BuildInfo() (*debug.BuildInfo, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, fmt.Errorf("fetching build info failed")
	}

	if bi == nil {
		return nil, fmt.Errorf("build information is empty")
	}

	return bi, nil
}

// ModuleVersion returns the version of the main module, or "(devel)" when
// build information is unavailable or carries no version.
func ModuleVersion() string {
	bi, err := BuildInfo()
	if err != nil || bi.Main.Version == "" {
		return "(devel)"
	}

	return bi.Main.Version
}
