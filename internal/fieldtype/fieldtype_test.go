package fieldtype

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestCatalogComplete(t *testing.T) {
	kinds := All()
	if len(kinds) != 16 {
		t.Fatalf("All() returned %d kinds, want 16", len(kinds))
	}

	names := make(map[string]bool)
	for _, k := range kinds {
		if k.String() == "" || k.String() == "unknown" {
			t.Errorf("kind %d has no name", k)
		}
		if names[k.String()] {
			t.Errorf("duplicate kind name %q", k.String())
		}
		names[k.String()] = true

		if k.Category() == "" {
			t.Errorf("kind %s has no category", k)
		}
		if !strings.HasPrefix(k.Definition(), "models.") {
			t.Errorf("kind %s definition %q does not declare a model field", k, k.Definition())
		}
	}
}

func TestKindFlags(t *testing.T) {
	wantUnique := map[Kind]bool{KindCharUnique: true, KindEmail: true, KindSlug: true, KindUUID: true}
	wantNullable := map[Kind]bool{KindFloat: true, KindDecimal: true, KindDate: true}
	wantTextual := map[Kind]bool{KindChar: true, KindCharUnique: true, KindSlug: true}

	for _, k := range All() {
		if got := k.Unique(); got != wantUnique[k] {
			t.Errorf("%s.Unique() = %v, want %v", k, got, wantUnique[k])
		}
		if got := k.Nullable(); got != wantNullable[k] {
			t.Errorf("%s.Nullable() = %v, want %v", k, got, wantNullable[k])
		}
		if got := k.Textual(); got != wantTextual[k] {
			t.Errorf("%s.Textual() = %v, want %v", k, got, wantTextual[k])
		}
	}
}

func TestRequiresAuxiliaryImport(t *testing.T) {
	for _, k := range All() {
		want := k == KindUUID
		if got := k.RequiresAuxiliaryImport(); got != want {
			t.Errorf("%s.RequiresAuxiliaryImport() = %v, want %v", k, got, want)
		}
	}
}

func TestRandomKindCoversCatalog(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	seen := make(map[Kind]int)
	for i := 0; i < 2000; i++ {
		k := RandomKind(rng)
		if !k.valid() {
			t.Fatalf("RandomKind() returned out-of-range kind %d", k)
		}
		seen[k]++
	}

	for _, k := range All() {
		if seen[k] == 0 {
			t.Errorf("RandomKind() never drew %s in 2000 draws", k)
		}
	}
}

func TestUnknownKind(t *testing.T) {
	bogus := Kind(99)
	if got := bogus.String(); got != "unknown" {
		t.Errorf("Kind(99).String() = %q, want %q", got, "unknown")
	}
	if bogus.Unique() || bogus.Nullable() || bogus.Textual() {
		t.Error("Kind(99) reports constraint flags, want all false")
	}
}
