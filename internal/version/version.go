// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries the build identity stamped into the league
// binaries at release time.
package version

import "fmt"

// Info is populated by the linker through -ldflags; a source build
// without stamping reports "dev".
type Info struct {
	Version   string // release tag, e.g. "v1.2.3"
	GitCommit string // short commit hash
	BuildTime string // RFC3339 build timestamp
}

// String renders the one-line form used by the -version flag.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}
