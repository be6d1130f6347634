// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package guard decides whether a session may enter a protected view.
package guard

import "github.com/leaguehq/leaguehq/internal/model"

// Decision is the outcome of a guard check.
type Decision int

const (
	// Allow renders the guarded view.
	Allow Decision = iota
	// RedirectLogin sends the visitor to the login view.
	RedirectLogin
	// RedirectUnauthorized sends an authenticated visitor with the wrong
	// role to the unauthorized view.
	RedirectUnauthorized
)

// String returns the decision name for logs.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "login"
	case RedirectUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Check gates a view. requiredRole may be empty, meaning any authenticated
// user is allowed. Role comparison is exact string equality: there is no
// hierarchy, so an admin does not implicitly satisfy a "user" requirement.
// The check is a pure function of session state at call time.
func Check(user *model.User, requiredRole string) Decision {
	if user == nil {
		return RedirectLogin
	}
	if requiredRole != "" && user.Role != requiredRole {
		return RedirectUnauthorized
	}
	return Allow
}
