// Package item defines the three-way item taxonomy and the classifier
// collaborator that resolves descriptions and types for item codes.
package item

import (
	"context"
	"strings"
)

// Type is the classification of a stock code.
type Type string

const (
	TypeKit    Type = "Kit"
	TypeModule Type = "Module"
	TypeItem   Type = "Item"
)

// NoDescription is returned when the catalog holds no designation for a code.
const NoDescription = "No Description"

// Classifier resolves descriptions and types for item codes.
// The catalog-backed implementation lives in the storage layer; the
// engines depend only on this interface.
type Classifier interface {
	// Describe returns the catalog description for a code in the active
	// language, falling back across languages, then to NoDescription.
	Describe(ctx context.Context, code string) string

	// Classify resolves a code to Kit, Module or Item.
	Classify(code, description string) Type
}

// DetectType classifies a code from its prefix and designation wording.
// Kit and module codes share the K prefix; the designation text
// disambiguates. Everything else is a plain item.
func DetectType(code, designation string) Type {
	code = strings.TrimSpace(code)
	if code == "" {
		return TypeItem
	}
	designation = strings.ToLower(designation)
	if strings.HasPrefix(strings.ToUpper(code), "K") {
		if strings.HasPrefix(designation, "kit") || strings.Contains(designation, "modules") {
			return TypeKit
		}
		if strings.Contains(designation, "module") && !strings.HasPrefix(designation, "kit") {
			return TypeModule
		}
	}
	return TypeItem
}

// Matches reports whether t equals the filter value, case-insensitively.
// An empty filter or "all" matches every type.
func (t Type) Matches(filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	return strings.EqualFold(string(t), filter)
}
