// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the console's templates and static assets.
package web

import "embed"

//go:embed all:templates
var Templates embed.FS

//go:embed static
var Static embed.FS
