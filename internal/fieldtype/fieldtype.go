// Package fieldtype enumerates the field kinds available to schema synthesis.
package fieldtype

import "math/rand/v2"

// Category is the coarse semantic bucket a kind belongs to.
type Category string

const (
	CategoryShortText        Category = "short-text"
	CategoryLongText         Category = "long-text"
	CategoryInteger          Category = "integer"
	CategoryDecimal          Category = "decimal"
	CategoryBoolean          Category = "boolean"
	CategoryDate             Category = "date"
	CategoryTimestampCreated Category = "timestamp-created"
	CategoryTimestampUpdated Category = "timestamp-updated"
	CategoryEmail            Category = "email"
	CategoryURL              Category = "url"
	CategorySlug             Category = "slug"
	CategoryIdentifier       Category = "identifier"
	CategoryStructured       Category = "structured"
)

// Kind identifies one entry in the field type catalog.
type Kind int

const (
	KindChar Kind = iota
	KindCharUnique
	KindText
	KindInteger
	KindPositiveInteger
	KindFloat
	KindDecimal
	KindBoolean
	KindDate
	KindCreatedAt
	KindUpdatedAt
	KindEmail
	KindURL
	KindSlug
	KindUUID
	KindJSON
)

// entry describes one catalog row. The definition string is the exact
// declaration the emitter prints for the kind.
type entry struct {
	name       string
	category   Category
	definition string
	nullable   bool
	unique     bool
	textual    bool
}

var catalog = [...]entry{
	KindChar:            {"char", CategoryShortText, "models.CharField(max_length=100, blank=True, db_index=True)", false, false, true},
	KindCharUnique:      {"char_unique", CategoryShortText, "models.CharField(max_length=255, unique=True)", false, true, true},
	KindText:            {"text", CategoryLongText, "models.TextField(blank=True, help_text='Enter description here.')", false, false, false},
	KindInteger:         {"integer", CategoryInteger, "models.IntegerField(default=0)", false, false, false},
	KindPositiveInteger: {"positive_integer", CategoryInteger, "models.PositiveIntegerField(default=0)", false, false, false},
	KindFloat:           {"float", CategoryDecimal, "models.FloatField(null=True, blank=True)", true, false, false},
	KindDecimal:         {"decimal", CategoryDecimal, "models.DecimalField(max_digits=12, decimal_places=2, null=True, blank=True)", true, false, false},
	KindBoolean:         {"boolean", CategoryBoolean, "models.BooleanField(default=False)", false, false, false},
	KindDate:            {"date", CategoryDate, "models.DateField(null=True, blank=True)", true, false, false},
	KindCreatedAt:       {"created_at", CategoryTimestampCreated, "models.DateTimeField(auto_now_add=True)", false, false, false},
	KindUpdatedAt:       {"updated_at", CategoryTimestampUpdated, "models.DateTimeField(auto_now=True)", false, false, false},
	KindEmail:           {"email", CategoryEmail, "models.EmailField(max_length=254, blank=True, unique=True)", false, true, false},
	KindURL:             {"url", CategoryURL, "models.URLField(blank=True, max_length=500)", false, false, false},
	KindSlug:            {"slug", CategorySlug, "models.SlugField(max_length=100, unique=True, blank=True)", false, true, true},
	KindUUID:            {"uuid", CategoryIdentifier, "models.UUIDField(default=uuid.uuid4, editable=False, unique=True, primary_key=False)", false, true, false},
	KindJSON:            {"json", CategoryStructured, "models.JSONField(default=dict, blank=True)", false, false, false},
}

// All returns every kind in catalog order.
func All() []Kind {
	kinds := make([]Kind, len(catalog))
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// RandomKind draws a kind uniformly from the catalog.
func RandomKind(rng *rand.Rand) Kind {
	return Kind(rng.IntN(len(catalog)))
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(catalog)
}

// String returns the kind's short manifest name.
func (k Kind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return catalog[k].name
}

// Category returns the kind's semantic bucket.
func (k Kind) Category() Category {
	if !k.valid() {
		return ""
	}
	return catalog[k].category
}

// Definition returns the declaration the emitter prints for the kind.
func (k Kind) Definition() string {
	if !k.valid() {
		return ""
	}
	return catalog[k].definition
}

// Nullable reports whether the declaration allows NULL at the database level.
func (k Kind) Nullable() bool {
	return k.valid() && catalog[k].nullable
}

// Unique reports whether the declaration enforces a uniqueness constraint.
func (k Kind) Unique() bool {
	return k.valid() && catalog[k].unique
}

// Textual reports whether the kind renders as a short text column, which
// makes it a candidate for display heuristics.
func (k Kind) Textual() bool {
	return k.valid() && catalog[k].textual
}

// RequiresAuxiliaryImport reports whether the kind's declaration depends
// on an extra import line. Only the opaque identifier kind does.
func (k Kind) RequiresAuxiliaryImport() bool {
	return k == KindUUID
}
