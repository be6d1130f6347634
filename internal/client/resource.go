// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TokenSource supplies the current bearer token. The token is read fresh on
// every request, never cached at construction, so a logout or re-login
// between calls is honored immediately.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// Resource is an HTTP client bound to one collection endpoint, e.g.
// /api/teams. T is the entity type of that collection.
//
// Every call is a single attempt: no retry, no caching, no deduplication.
type Resource[T any] struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewResource creates a client for the collection at baseURL+path.
func NewResource[T any](baseURL, path string, tokens TokenSource, httpClient *http.Client) *Resource[T] {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Resource[T]{
		baseURL: strings.TrimRight(baseURL, "/") + "/" + strings.Trim(path, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// List fetches the full collection.
func (c *Resource[T]) List(ctx context.Context) ([]T, error) {
	var list []T
	if err := c.do(ctx, http.MethodGet, "", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get fetches a single record.
func (c *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var record T
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%d", id), nil, &record)
	return record, err
}

// Create posts a new record and returns the stored version.
func (c *Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var record T
	err := c.do(ctx, http.MethodPost, "", payload, &record)
	return record, err
}

// Update replaces a record and returns the stored version.
func (c *Resource[T]) Update(ctx context.Context, id int64, payload any) (T, error) {
	var record T
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/%d", id), payload, &record)
	return record, err
}

// Remove deletes a record.
func (c *Resource[T]) Remove(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/%d", id), nil, nil)
}

// Do performs an entity-specific action request (e.g. POST /players/7/transfer)
// and decodes the response into a record.
func (c *Resource[T]) Do(ctx context.Context, method, subpath string, payload any) (T, error) {
	var record T
	err := c.do(ctx, method, subpath, payload, &record)
	return record, err
}

// do executes one request against the collection. out may be nil when the
// caller does not care about the body.
func (c *Resource[T]) do(ctx context.Context, method, subpath string, payload, out any) error {
	url := c.baseURL + subpath

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return unwrap(raw, out)
}

// unwrap decodes a response body into out, accepting both a bare payload
// and one wrapped under a data field. Shape normalization lives here so
// callers never guess.
func unwrap(raw []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(raw, out)
}

// httpError builds an HTTPError, pulling the server's error message out of
// the standard error envelope when present.
func httpError(status int, raw []byte) *HTTPError {
	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	httpErr := &HTTPError{StatusCode: status}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		httpErr.Code = envelope.Error.Code
		httpErr.Message = envelope.Error.Message
		if len(envelope.Error.Details) > 0 {
			parts := make([]string, 0, len(envelope.Error.Details))
			for field, msg := range envelope.Error.Details {
				parts = append(parts, field+": "+msg)
			}
			if httpErr.Message != "" {
				httpErr.Message += " (" + strings.Join(parts, "; ") + ")"
			} else {
				httpErr.Message = strings.Join(parts, "; ")
			}
		}
	}
	return httpErr
}
