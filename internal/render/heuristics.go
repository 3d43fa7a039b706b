package render

import (
	"strings"

	"github.com/example/djinn/internal/schema"
)

// OrderingHint picks the field an entity's records should order by and
// whether that order is descending. Precedence: temporal names
// (created/date/timestamp, descending) beat nominal names
// (name/title/order, ascending); ok is false when nothing qualifies.
// Fields are scanned in the order given, so callers pass them sorted.
func OrderingHint(fields []schema.FieldSpec) (field string, descending bool, ok bool) {
	for _, f := range fields {
		if containsAny(strings.ToLower(f.Name), "created", "date", "timestamp") {
			return f.Name, true, true
		}
	}
	for _, f := range fields {
		if containsAny(strings.ToLower(f.Name), "name", "title", "order") {
			return f.Name, false, true
		}
	}
	return "", false, false
}

// DisplayField picks the field backing the human-readable
// representation. Precedence: name-like tokens
// (name/title/email/subdomain) beat the first short-text field; ok is
// false when nothing qualifies and the caller falls back to a formatted
// type-and-identity string. Fields are scanned in the order given.
func DisplayField(fields []schema.FieldSpec) (string, bool) {
	for _, f := range fields {
		if containsAny(strings.ToLower(f.Name), "name", "title", "email", "subdomain") {
			return f.Name, true
		}
	}
	for _, f := range fields {
		if !f.IsRelation() && f.Kind.Textual() {
			return f.Name, true
		}
	}
	return "", false
}

func containsAny(s string, tokens ...string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
