// Package chanversion reports build provenance for the driver binary:
// a one-line banner on stdout, plus the full build info through the
// same structured logger every other component uses.
package chanversion

import (
	"fmt"
	"runtime/debug"
	"strconv"

	"github.com/kd2nrd/chanem/internal/chanlog"
)

// Version is set at build time via
// -ldflags "-X 'github.com/kd2nrd/chanem/internal/chanversion.Version=X'".
var Version string

// vcsInfo is the subset of debug.BuildInfo.Settings this package
// cares about, collected into a map so a missing key is a simple
// lookup miss rather than a linear scan repeated per field.
type vcsInfo map[string]string

func collectVCSInfo(bi *debug.BuildInfo) vcsInfo {
	var info = make(vcsInfo, len(bi.Settings))
	for _, setting := range bi.Settings {
		info[setting.Key] = setting.Value
	}
	return info
}

func (v vcsInfo) lookup(key, fallback string) string {
	if val, ok := v[key]; ok {
		return val
	}
	return fallback
}

// revision reports the build's VCS revision, suffixed to flag a dirty
// or indeterminate working tree at build time.
func (v vcsInfo) revision() string {
	var rev = v.lookup("vcs.revision", "UNKNOWN")

	dirty, err := strconv.ParseBool(v.lookup("vcs.modified", "INVALID"))
	switch {
	case err != nil:
		return rev + "-UNKNOWNDIRTY"
	case dirty:
		return rev + "-DIRTY"
	default:
		return rev
	}
}

// Print writes a one-line version banner to stdout, and logs the
// full Go build info at debug level when verbose is set.
func Print(verbose bool) {
	var buildInfo, ok = debug.ReadBuildInfo()
	if !ok {
		buildInfo = &debug.BuildInfo{}
	}

	var vcs = collectVCSInfo(buildInfo)

	var version = Version
	if version == "" {
		version = "!UNKNOWN!"
	}

	fmt.Printf("chanem-driver - Version %s (revision %s, built at %s)\n",
		version, vcs.revision(), vcs.lookup("vcs.time", "UNKNOWN"))

	if verbose {
		chanlog.For("version").Debug("build info", "info", buildInfo)
	}
}
