package common

import (
	"fmt"
	"strings"

	"github.com/carlmjohnson/versioninfo"
)

// Version is set via ldflags at build time: -ldflags "-X github.com/Alia5/lspgen/internal/codegen/common.Version=x.y.z"
var Version = ""

const devVersion = "0.0.1-dev"

// GetVersion returns the generator version stamped into file headers. The
// ldflags value wins, then the module version. VCS revisions are never used
// so unrelated commits do not change generated output.
func GetVersion() (string, error) {
	if Version == "" {
		return moduleVersion(versioninfo.Version), nil
	}

	version := strings.TrimPrefix(Version, "v")
	baseVersion := strings.SplitN(version, "-", 2)[0]
	if !strings.Contains(baseVersion, ".") {
		return "", fmt.Errorf("invalid version format: %s (expected x.y.z)", Version)
	}

	return version, nil
}

func moduleVersion(v string) string {
	switch v {
	case "", "unknown", "(devel)", "devel":
		return devVersion
	}
	return strings.TrimPrefix(v, "v")
}

// FileHeader returns the "generated code" banner for a file using the given
// line comment marker.
func FileHeader(comment, version string) string {
	return fmt.Sprintf("%s Code generated by lspgen %s. DO NOT EDIT.\n", comment, version)
}
