// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/leaguehq/leaguehq/internal/model"
	"github.com/leaguehq/leaguehq/internal/store"
)

// RevenueRequest is the request body for creating or updating a revenue entry.
type RevenueRequest struct {
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
}

func (req *RevenueRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Source) == "" {
		fieldErrors["source"] = "Source is required"
	}
	if req.Amount < 0 {
		fieldErrors["amount"] = "Amount must not be negative"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// ListRevenues returns all revenue entries.
func (h *Handler) ListRevenues(w http.ResponseWriter, r *http.Request) {
	revenues, err := h.queries.ListRevenues(r.Context())
	if err != nil {
		slog.Error("listing revenues failed", "error", err)
		WriteInternalError(w, "Failed to list revenues")
		return
	}
	if revenues == nil {
		revenues = []model.Revenue{}
	}
	WriteSuccess(w, revenues)
}

// GetRevenue returns a single revenue entry by ID.
func (h *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, ok := requireEntityByID(w, r, "Revenue", func(id int64) (model.Revenue, error) {
		return h.queries.GetRevenue(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, revenue)
}

// CreateRevenue records a new revenue entry.
func (h *Handler) CreateRevenue(w http.ResponseWriter, r *http.Request) {
	var req RevenueRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	revenue, err := h.queries.CreateRevenue(r.Context(), store.CreateRevenueParams{
		Source: strings.TrimSpace(req.Source),
		Amount: req.Amount,
	})
	if err != nil {
		slog.Error("creating revenue failed", "error", err)
		WriteInternalError(w, "Failed to create revenue")
		return
	}
	WriteCreated(w, revenue)
}

// UpdateRevenue updates an existing revenue entry.
func (h *Handler) UpdateRevenue(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Revenue", func(id int64) (model.Revenue, error) {
		return h.queries.GetRevenue(r.Context(), id)
	})
	if !ok {
		return
	}

	var req RevenueRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	revenue, err := h.queries.UpdateRevenue(r.Context(), store.UpdateRevenueParams{
		ID:     existing.ID,
		Source: strings.TrimSpace(req.Source),
		Amount: req.Amount,
	})
	if err != nil {
		slog.Error("updating revenue failed", "error", err, "revenue_id", existing.ID)
		WriteInternalError(w, "Failed to update revenue")
		return
	}
	WriteSuccess(w, revenue)
}

// DeleteRevenue removes a revenue entry.
func (h *Handler) DeleteRevenue(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Revenue", func(id int64) (model.Revenue, error) {
		return h.queries.GetRevenue(r.Context(), id)
	})
	if !ok {
		return
	}
	if err := h.queries.DeleteRevenue(r.Context(), existing.ID); err != nil {
		slog.Error("deleting revenue failed", "error", err, "revenue_id", existing.ID)
		WriteInternalError(w, "Failed to delete revenue")
		return
	}
	WriteJSON(w, http.StatusOK, Response{Data: map[string]bool{"deleted": true}})
}

// InvestorRequest is the request body for creating or updating an investor.
type InvestorRequest struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
}

func (req *InvestorRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.Contribution < 0 {
		fieldErrors["contribution"] = "Contribution must not be negative"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// ListInvestors returns all investors.
func (h *Handler) ListInvestors(w http.ResponseWriter, r *http.Request) {
	investors, err := h.queries.ListInvestors(r.Context())
	if err != nil {
		slog.Error("listing investors failed", "error", err)
		WriteInternalError(w, "Failed to list investors")
		return
	}
	if investors == nil {
		investors = []model.Investor{}
	}
	WriteSuccess(w, investors)
}

// GetInvestor returns a single investor by ID.
func (h *Handler) GetInvestor(w http.ResponseWriter, r *http.Request) {
	investor, ok := requireEntityByID(w, r, "Investor", func(id int64) (model.Investor, error) {
		return h.queries.GetInvestor(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, investor)
}

// CreateInvestor creates a new investor.
func (h *Handler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	var req InvestorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	investor, err := h.queries.CreateInvestor(r.Context(), store.CreateInvestorParams{
		Name:         strings.TrimSpace(req.Name),
		Contribution: req.Contribution,
	})
	if err != nil {
		slog.Error("creating investor failed", "error", err)
		WriteInternalError(w, "Failed to create investor")
		return
	}
	WriteCreated(w, investor)
}

// UpdateInvestor updates an existing investor.
func (h *Handler) UpdateInvestor(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Investor", func(id int64) (model.Investor, error) {
		return h.queries.GetInvestor(r.Context(), id)
	})
	if !ok {
		return
	}

	var req InvestorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	investor, err := h.queries.UpdateInvestor(r.Context(), store.UpdateInvestorParams{
		ID:           existing.ID,
		Name:         strings.TrimSpace(req.Name),
		Contribution: req.Contribution,
	})
	if err != nil {
		slog.Error("updating investor failed", "error", err, "investor_id", existing.ID)
		WriteInternalError(w, "Failed to update investor")
		return
	}
	WriteSuccess(w, investor)
}

// DeleteInvestor removes an investor.
func (h *Handler) DeleteInvestor(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "Investor", func(id int64) (model.Investor, error) {
		return h.queries.GetInvestor(r.Context(), id)
	})
	if !ok {
		return
	}
	if err := h.queries.DeleteInvestor(r.Context(), existing.ID); err != nil {
		slog.Error("deleting investor failed", "error", err, "investor_id", existing.ID)
		WriteInternalError(w, "Failed to delete investor")
		return
	}
	WriteJSON(w, http.StatusOK, Response{Data: map[string]bool{"deleted": true}})
}
