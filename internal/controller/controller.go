// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/leaguehq/leaguehq/internal/client"
)

// State of the list lifecycle.
type State int

const (
	// Idle means no fetch has happened yet.
	Idle State = iota
	// Loading means a list fetch is in flight.
	Loading
	// Ready means the list reflects the last successful fetch.
	Ready
	// Submitting means a create/update is in flight.
	Submitting
	// Errored means the last operation failed; Err() carries the message.
	Errored
)

// String returns the state name for logs and templates.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Submitting:
		return "submitting"
	case Errored:
		return "error"
	default:
		return "unknown"
	}
}

// Option is one entry of an auxiliary selection list (e.g. teams for the
// player form).
type Option struct {
	ID    int64
	Label string
}

// OptionsLoader fetches an auxiliary selection list. Its failure must never
// block the primary list.
type OptionsLoader func(ctx context.Context) ([]Option, error)

// Controller drives the fetch, edit, submit, refetch cycle for one entity
// type. The list is replaced wholesale after every successful fetch; there
// is no merging and no optimistic update. A failed operation leaves the
// previous list visible.
type Controller[T any] struct {
	resource *client.Resource[T]
	desc     Descriptor[T]
	loadOpts OptionsLoader

	mu        sync.Mutex
	state     State
	errMsg    string
	list      []T
	draft     map[string]string
	editingID *int64
	options   []Option
}

// New creates a controller for one resource.
func New[T any](resource *client.Resource[T], desc Descriptor[T]) *Controller[T] {
	return &Controller[T]{
		resource: resource,
		desc:     desc,
		state:    Idle,
		draft:    make(map[string]string),
	}
}

// WithOptions attaches an auxiliary options loader and returns the
// controller for chaining.
func (c *Controller[T]) WithOptions(loader OptionsLoader) *Controller[T] {
	c.loadOpts = loader
	return c
}

// Refresh fetches the list. On failure the previous list stays visible and
// the error message is surfaced; there is no automatic retry.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.state = Loading
	c.mu.Unlock()

	list, err := c.resource.List(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = Errored
		c.errMsg = userMessage(err, "could not load the list")
		return err
	}
	c.list = list
	c.state = Ready
	c.errMsg = ""
	return nil
}

// LoadOptions fetches the auxiliary selection list, independently of the
// primary fetch. A failure is logged and leaves the options empty; it never
// changes the controller state.
func (c *Controller[T]) LoadOptions(ctx context.Context) {
	if c.loadOpts == nil {
		return
	}
	options, err := c.loadOpts(ctx)
	if err != nil {
		slog.Warn("auxiliary options fetch failed", "error", err)
		return
	}
	c.mu.Lock()
	c.options = options
	c.mu.Unlock()
}

// StartEdit copies a record's editable fields into the draft and marks it as
// being edited. The list is untouched.
func (c *Controller[T]) StartEdit(record T) {
	id := c.desc.ID(record)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = c.desc.ToDraft(record)
	c.editingID = &id
}

// CancelEdit clears the draft and the editing reference.
func (c *Controller[T]) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = make(map[string]string)
	c.editingID = nil
}

// SetField stages one raw form value. No parsing happens until Submit.
func (c *Controller[T]) SetField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft[name] = value
}

// Submit coerces the draft and sends it: update when a record is being
// edited, create otherwise. Success clears the draft and refetches the
// list. Failure keeps the draft intact so the user can retry without
// re-entering data.
func (c *Controller[T]) Submit(ctx context.Context) error {
	c.mu.Lock()
	payload, err := c.desc.BuildPayload(c.draft)
	if err != nil {
		c.errMsg = userMessage(err, "check the highlighted fields")
		c.mu.Unlock()
		return err
	}
	editingID := c.editingID
	c.state = Submitting
	c.mu.Unlock()

	if editingID != nil {
		_, err = c.resource.Update(ctx, *editingID, payload)
	} else {
		_, err = c.resource.Create(ctx, payload)
	}
	if err != nil {
		c.mu.Lock()
		c.state = Errored
		c.errMsg = userMessage(err, "could not save the record")
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.draft = make(map[string]string)
	c.editingID = nil
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Remove deletes a record after explicit confirmation. Without confirmation
// it is a no-op. Failure leaves the list unchanged.
func (c *Controller[T]) Remove(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return nil
	}
	if err := c.resource.Remove(ctx, id); err != nil {
		c.mu.Lock()
		c.state = Errored
		c.errMsg = userMessage(err, "could not delete the record")
		c.mu.Unlock()
		return err
	}
	return c.Refresh(ctx)
}

// State returns the current lifecycle state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the surfaced error message, or "" when none.
func (c *Controller[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// List returns the records of the last successful fetch.
func (c *Controller[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list
}

// Options returns the auxiliary selection list.
func (c *Controller[T]) Options() []Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.options
}

// Draft returns a copy of the raw draft values.
func (c *Controller[T]) Draft() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft := make(map[string]string, len(c.draft))
	for k, v := range c.draft {
		draft[k] = v
	}
	return draft
}

// EditingID returns the ID of the record being edited, or nil for create
// mode.
func (c *Controller[T]) EditingID() *int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editingID == nil {
		return nil
	}
	id := *c.editingID
	return &id
}

// RestoreDraft reinstates staged form state, used when the console rebuilds
// a controller between requests.
func (c *Controller[T]) RestoreDraft(draft map[string]string, editingID *int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = make(map[string]string, len(draft))
	for k, v := range draft {
		c.draft[k] = v
	}
	c.editingID = editingID
}

// Fields exposes the descriptor's field list for form rendering.
func (c *Controller[T]) Fields() []Field {
	return c.desc.Fields
}

// userMessage prefers the server-supplied error text and falls back to a
// generic message.
func userMessage(err error, fallback string) string {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	return fallback
}
