// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"runtime/debug"
	"strings"
)

// BuildVersion is the latest tagged release.
const BuildVersion string = "v0.4.0"

// BuildInfo describes the VCS state the binary was built from.
type BuildInfo struct {
	GoVersion   string
	VcsRevision string
	VcsTime     string
	VcsModified bool
}

// Revision returns "<date>-<short hash>[+dirty]", or "unknown" outside a VCS build.
func (b *BuildInfo) Revision() string {
	if len(b.VcsRevision) < 8 {
		return "unknown"
	}

	s := strings.Split(b.VcsTime, "T")[0] + "-" + b.VcsRevision[:8]
	if b.VcsModified {
		s += "+dirty"
	}

	return s
}

func (b *BuildInfo) load() {
	if info, ok := debug.ReadBuildInfo(); ok {
		b.GoVersion = info.GoVersion
		b.VcsRevision = getBuildSetting(info.Settings, "vcs.revision")
		b.VcsTime = getBuildSetting(info.Settings, "vcs.time")
		b.VcsModified = getBuildSetting(info.Settings, "vcs.modified") == "true"
	}
}

func getBuildSetting(settings []debug.BuildSetting, key string) string {
	for _, kv := range settings {
		if key == kv.Key {
			return kv.Value
		}
	}

	return ""
}

// Build returns information about the running binary.
func Build() BuildInfo {
	var b BuildInfo

	b.load()

	return b
}
