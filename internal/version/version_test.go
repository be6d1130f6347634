// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestString(t *testing.T) {
	info := Info{
		Version:   "v2.1.0",
		GitCommit: "f00dcafe",
		BuildTime: "2026-08-30T09:00:00Z",
	}

	got := info.String()
	want := "v2.1.0 (commit: f00dcafe, built: 2026-08-30T09:00:00Z)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestZeroValueBeforeStamping(t *testing.T) {
	var info Info

	if info.Version != "" || info.GitCommit != "" || info.BuildTime != "" {
		t.Errorf("unstamped Info = %+v, want empty fields", info)
	}
}
