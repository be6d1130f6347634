// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPayloadCoercesDraft(t *testing.T) {
	desc := teamDescriptor()

	payload, err := desc.BuildPayload(map[string]string{
		"name": "  Rovers  ",
		"city": "Leeds",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Rovers", payload["name"])
	assert.Equal(t, "Leeds", payload["city"])
}

func TestBuildPayloadKinds(t *testing.T) {
	desc := Descriptor[struct{}]{
		Fields: []Field{
			{Name: "label", Kind: Text},
			{Name: "price", Kind: Number},
			{Name: "count", Kind: Int},
			{Name: "team", Kind: OptionalRef},
		},
	}

	payload, err := desc.BuildPayload(map[string]string{
		"label": "gate receipts",
		"price": "1250.75",
		"count": "3",
		"team":  "7",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1250.75, payload["price"])
	assert.Equal(t, int64(3), payload["count"])
	assert.Equal(t, int64(7), payload["team"])
}

func TestBuildPayloadEmptyOptionals(t *testing.T) {
	desc := Descriptor[struct{}]{
		Fields: []Field{
			{Name: "label", Kind: Text},
			{Name: "price", Kind: Number},
			{Name: "count", Kind: Int},
			{Name: "team", Kind: OptionalRef},
		},
	}

	payload, err := desc.BuildPayload(map[string]string{})
	assert.NoError(t, err)
	assert.Equal(t, "", payload["label"])
	assert.Equal(t, float64(0), payload["price"])
	assert.Equal(t, int64(0), payload["count"])
	assert.Nil(t, payload["team"])
}

func TestBuildPayloadAccumulatesErrors(t *testing.T) {
	desc := Descriptor[struct{}]{
		Fields: []Field{
			{Name: "name", Kind: Text, Required: true},
			{Name: "price", Kind: Number},
			{Name: "team", Kind: OptionalRef},
		},
	}

	_, err := desc.BuildPayload(map[string]string{
		"price": "not-a-number",
		"team":  "also-bad",
	})

	var valErr *ValidationError
	assert.True(t, errors.As(err, &valErr))
	assert.Len(t, valErr.Fields, 3)
	assert.Equal(t, "required", valErr.Fields["name"])
	assert.Contains(t, valErr.Error(), "price")
}
