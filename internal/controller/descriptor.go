// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package controller implements the generic list-edit-submit-refetch cycle
// behind every console resource page.
package controller

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FieldKind selects how a draft value is coerced at submit time.
type FieldKind int

const (
	// Text passes the trimmed string through.
	Text FieldKind = iota
	// Number coerces to float64.
	Number
	// Int coerces to int64.
	Int
	// OptionalRef coerces to int64 or null when empty, for foreign keys.
	OptionalRef
)

// Field describes one editable field of a resource.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// Descriptor binds the generic controller to one entity shape.
type Descriptor[T any] struct {
	// Fields lists the editable fields in form order.
	Fields []Field
	// ID extracts the primary key of a record.
	ID func(T) int64
	// ToDraft copies a record's editable fields into raw draft text.
	ToDraft func(T) map[string]string
}

// ValidationError reports client-side draft problems found at the submit
// boundary. The draft is left intact so the user can correct and retry.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation: " + strings.Join(parts, "; ")
}

// BuildPayload coerces a raw-text draft into a typed payload. Coercion and
// validation happen here, once, at the submit boundary; until then the
// draft holds whatever the user typed.
func (d Descriptor[T]) BuildPayload(draft map[string]string) (map[string]any, error) {
	payload := make(map[string]any, len(d.Fields))
	fieldErrors := make(map[string]string)

	for _, field := range d.Fields {
		raw := strings.TrimSpace(draft[field.Name])
		if raw == "" {
			if field.Required {
				fieldErrors[field.Name] = "required"
				continue
			}
			switch field.Kind {
			case OptionalRef:
				payload[field.Name] = nil
			case Number:
				payload[field.Name] = float64(0)
			case Int:
				payload[field.Name] = int64(0)
			default:
				payload[field.Name] = ""
			}
			continue
		}

		switch field.Kind {
		case Text:
			payload[field.Name] = raw
		case Number:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				fieldErrors[field.Name] = fmt.Sprintf("%q is not a number", raw)
				continue
			}
			payload[field.Name] = v
		case Int, OptionalRef:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				fieldErrors[field.Name] = fmt.Sprintf("%q is not a whole number", raw)
				continue
			}
			payload[field.Name] = v
		}
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}
	return payload, nil
}
