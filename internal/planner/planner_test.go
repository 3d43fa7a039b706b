package planner

import (
	"reflect"
	"testing"

	"github.com/example/djinn/internal/namegen"
	"github.com/example/djinn/internal/schema"
	"github.com/example/djinn/internal/vocab"
)

func testPack() vocab.Pack {
	return vocab.NewCatalog().Lookup("blog")
}

func baseRequest() Request {
	return Request{
		Pack:            testPack(),
		MinEntities:     3,
		MaxEntities:     7,
		AvgFields:       4,
		RelationDensity: 0.5,
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr bool
	}{
		{"valid", func(r *Request) {}, false},
		{"zero min", func(r *Request) { r.MinEntities = 0 }, true},
		{"inverted range", func(r *Request) { r.MinEntities = 5; r.MaxEntities = 2 }, true},
		{"negative avg fields", func(r *Request) { r.AvgFields = -1 }, true},
		{"density below range", func(r *Request) { r.RelationDensity = -0.1 }, true},
		{"density above range", func(r *Request) { r.RelationDensity = 1.1 }, true},
		{"empty pack", func(r *Request) { r.Pack = vocab.Pack{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlanInvariants(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		p := New(NewRand(seed))
		plan, err := p.Plan(baseRequest())
		if err != nil {
			t.Fatalf("seed %d: Plan() error = %v", seed, err)
		}

		if n := len(plan.Entities); n < 3 || n > 7 {
			t.Errorf("seed %d: entity count = %d, want within [3, 7]", seed, n)
		}
		if err := plan.Validate(); err != nil {
			t.Errorf("seed %d: plan fails validation: %v", seed, err)
		}
		for _, e := range plan.Entities {
			if len(e.Fields) < 1 {
				t.Errorf("seed %d: entity %s has no fields", seed, e.Name)
			}
		}
	}
}

func TestPlanEntityCountSpansRange(t *testing.T) {
	counts := make(map[int]bool)
	for seed := uint64(0); seed < 200; seed++ {
		p := New(NewRand(seed))
		plan, err := p.Plan(baseRequest())
		if err != nil {
			t.Fatalf("seed %d: Plan() error = %v", seed, err)
		}
		counts[len(plan.Entities)] = true
	}
	if !counts[3] || !counts[7] {
		t.Errorf("entity counts over 200 seeds = %v, want both range endpoints drawn", counts)
	}
}

func TestSingleEntityForcesZeroRelations(t *testing.T) {
	req := baseRequest()
	req.MinEntities = 1
	req.MaxEntities = 1
	req.RelationDensity = 1.0

	for seed := uint64(0); seed < 50; seed++ {
		p := New(NewRand(seed))
		plan, err := p.Plan(req)
		if err != nil {
			t.Fatalf("seed %d: Plan() error = %v", seed, err)
		}
		if len(plan.Entities) != 1 {
			t.Fatalf("seed %d: entity count = %d, want 1", seed, len(plan.Entities))
		}
		if n := plan.RelationCount(); n != 0 {
			t.Errorf("seed %d: relation count = %d for single-entity plan, want 0", seed, n)
		}
	}
}

func TestZeroAvgFieldsCoercedToOne(t *testing.T) {
	req := baseRequest()
	req.AvgFields = 0
	req.RelationDensity = 0

	for seed := uint64(0); seed < 30; seed++ {
		p := New(NewRand(seed))
		plan, err := p.Plan(req)
		if err != nil {
			t.Fatalf("seed %d: Plan() error = %v", seed, err)
		}
		for _, e := range plan.Entities {
			if len(e.Fields) != 1 {
				t.Errorf("seed %d: entity %s has %d fields with avg 0, want exactly 1", seed, e.Name, len(e.Fields))
			}
		}
	}
}

func TestRelationDensityConverges(t *testing.T) {
	req := baseRequest()
	req.MinEntities = 10
	req.MaxEntities = 10
	req.RelationDensity = 0.6

	withRelation := 0
	total := 0
	for seed := uint64(0); seed < 200; seed++ {
		p := New(NewRand(seed))
		plan, err := p.Plan(req)
		if err != nil {
			t.Fatalf("seed %d: Plan() error = %v", seed, err)
		}
		for _, e := range plan.Entities {
			total++
			if len(e.Relations()) > 0 {
				withRelation++
			}
		}
	}

	frac := float64(withRelation) / float64(total)
	if frac < 0.45 || frac > 0.75 {
		t.Errorf("relation fraction = %.3f over %d entities, want within 0.6 +/- 0.15", frac, total)
	}
}

func TestPlanReproducibleWithSeed(t *testing.T) {
	req := baseRequest()

	first, err := New(NewRand(42)).Plan(req)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	second, err := New(NewRand(42)).Plan(req)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical seeds produced different plans")
	}
}

func TestPlanTinyVocabulary(t *testing.T) {
	req := Request{
		Pack:            vocab.Pack{Domain: "tiny", Nouns: []string{"Item", "Record"}, Fields: []string{"name", "value"}},
		MinEntities:     5,
		MaxEntities:     5,
		AvgFields:       2,
		RelationDensity: 0.3,
	}

	for seed := uint64(0); seed < 20; seed++ {
		p := New(NewRand(seed))
		plan, err := p.Plan(req)
		if err != nil {
			t.Fatalf("seed %d: Plan() error = %v", seed, err)
		}
		if len(plan.Entities) != 5 {
			t.Fatalf("seed %d: entity count = %d, want 5", seed, len(plan.Entities))
		}
		if err := plan.Validate(); err != nil {
			t.Errorf("seed %d: plan fails validation: %v", seed, err)
		}
	}
}

func TestPoissonMean(t *testing.T) {
	p := New(NewRand(9))

	sum := 0
	const draws = 2000
	for i := 0; i < draws; i++ {
		sum += p.poisson(4)
	}

	mean := float64(sum) / draws
	if mean < 3.5 || mean > 4.5 {
		t.Errorf("poisson(4) sample mean = %.3f over %d draws, want near 4", mean, draws)
	}
}

func TestRelatedName(t *testing.T) {
	tests := []struct {
		owner string
		field string
		want  string
	}{
		{"Post", "author", "post_author_related"},
		{"Item_1", "supplier", "item_1_supplier_related"},
		{"Post", "_hidden", "post_hidden_related"},
		{"ApiKey", "tenant", "apikey_tenant_related"},
	}

	for _, tt := range tests {
		if got := relatedName(tt.owner, tt.field); got != tt.want {
			t.Errorf("relatedName(%q, %q) = %q, want %q", tt.owner, tt.field, got, tt.want)
		}
	}
}

func TestRelationBackrefCollisionSuffixed(t *testing.T) {
	pack := vocab.Pack{Domain: "tiny", Nouns: []string{"Data"}, Fields: []string{"value"}}
	names := []string{"Data", "Target"}

	p := New(NewRand(13))
	sawSuffix := false
	for i := 0; i < 100; i++ {
		backrefs := map[string]map[string]bool{
			"Target": {"data_target_related": true},
		}
		reg := namegen.NewRegistry()
		fs := p.relationField(reg, pack, "Data", names, backrefs)

		switch fs.RelatedName {
		case "data_target_related_2":
			sawSuffix = true
		case "data_value_related":
		default:
			t.Fatalf("relationField() related name = %q, want suffixed or vocabulary-derived", fs.RelatedName)
		}
		if fs.RelationTarget != "Target" {
			t.Fatalf("relationField() target = %q, want Target", fs.RelationTarget)
		}
	}
	if !sawSuffix {
		t.Error("back-reference collision never resolved via numeric suffix in 100 trials")
	}
}

func fieldSpecsNamed(names ...string) []schema.FieldSpec {
	specs := make([]schema.FieldSpec, len(names))
	for i, n := range names {
		specs[i] = schema.FieldSpec{Name: n}
	}
	return specs
}

func TestSlugSource(t *testing.T) {
	if got := slugSource(fieldSpecsNamed("status", "full_name", "title")); got != "full_name" {
		t.Errorf("slugSource() = %q, want %q", got, "full_name")
	}
	if got := slugSource(fieldSpecsNamed("status", "amount")); got != "" {
		t.Errorf("slugSource() = %q for nameless fields, want empty", got)
	}
}
