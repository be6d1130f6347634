// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/leaguehq/leaguehq/internal/auth"
	"github.com/leaguehq/leaguehq/internal/middleware"
	"github.com/leaguehq/leaguehq/internal/model"
)

// crudHandlers groups the standard handlers of one resource.
type crudHandlers struct {
	List   http.HandlerFunc
	Get    http.HandlerFunc
	Create http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

// registerCRUD registers the standard CRUD routes for a resource.
// Routes: GET /, POST /, GET /{id}, PUT /{id}, DELETE /{id}
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	r.Get(base, h.List)
	r.Post(base, h.Create)
	r.Get(base+"/{id}", h.Get)
	r.Put(base+"/{id}", h.Update)
	r.Delete(base+"/{id}", h.Delete)
}

// Router builds the complete API route tree.
func Router(db *sql.DB, issuer *auth.TokenIssuer) chi.Router {
	h := NewHandler(db, issuer)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", h.Health)
	r.Get("/status", h.Status)

	// Login is the only credentialed endpoint reachable without a token,
	// so it carries its own per-IP limiter.
	loginLimiter := middleware.NewGlobalRateLimiter(1, 5)
	r.With(loginLimiter.Middleware()).Post("/auth/login", h.Login)
	r.With(middleware.BearerAuth(issuer, db)).Get("/auth/me", h.Me)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.BearerAuth(issuer, db))
		r.Use(middleware.UserRateLimit(50, 100))

		// Match results are readable by every authenticated account.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(model.RoleAdmin, model.RoleUser))
			r.Get("/matches", h.ListMatches)
			r.Get("/matches/{id}", h.GetMatch)
		})

		// Everything else is admin territory.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))

			registerCRUD(r, "/teams", crudHandlers{
				List: h.ListTeams, Get: h.GetTeam, Create: h.CreateTeam,
				Update: h.UpdateTeam, Delete: h.DeleteTeam,
			})
			registerCRUD(r, "/players", crudHandlers{
				List: h.ListPlayers, Get: h.GetPlayer, Create: h.CreatePlayer,
				Update: h.UpdatePlayer, Delete: h.DeletePlayer,
			})
			r.Post("/players/{id}/transfer", h.TransferPlayer)

			r.Post("/matches", h.CreateMatch)
			r.Put("/matches/{id}", h.UpdateMatch)
			r.Delete("/matches/{id}", h.DeleteMatch)

			registerCRUD(r, "/trophies", crudHandlers{
				List: h.ListTrophies, Get: h.GetTrophy, Create: h.CreateTrophy,
				Update: h.UpdateTrophy, Delete: h.DeleteTrophy,
			})
			registerCRUD(r, "/revenues", crudHandlers{
				List: h.ListRevenues, Get: h.GetRevenue, Create: h.CreateRevenue,
				Update: h.UpdateRevenue, Delete: h.DeleteRevenue,
			})
			registerCRUD(r, "/investors", crudHandlers{
				List: h.ListInvestors, Get: h.GetInvestor, Create: h.CreateInvestor,
				Update: h.UpdateInvestor, Delete: h.DeleteInvestor,
			})
			registerCRUD(r, "/users", crudHandlers{
				List: h.ListUsers, Get: h.GetUser, Create: h.CreateUser,
				Update: h.UpdateUser, Delete: h.DeleteUser,
			})
			r.Get("/events", h.ListEvents)
		})
	})

	return r
}
