// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// sessionKeyPrefix namespaces auth state inside the browser session, away
// from flash messages and draft state.
const sessionKeyPrefix = "league_"

// scsStorage adapts the scs session manager to the auth session's storage
// interface. It is request-scoped: scs keys session data off the request
// context.
type scsStorage struct {
	manager *scs.SessionManager
	ctx     context.Context
}

func (s *scsStorage) Get(key string) (string, bool) {
	value := s.manager.GetString(s.ctx, sessionKeyPrefix+key)
	return value, value != ""
}

func (s *scsStorage) Set(key, value string) error {
	s.manager.Put(s.ctx, sessionKeyPrefix+key, value)
	return nil
}

func (s *scsStorage) Delete(key string) error {
	s.manager.Remove(s.ctx, sessionKeyPrefix+key)
	return nil
}
