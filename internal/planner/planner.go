// Package planner synthesizes schema plans from vocabulary packs and
// sizing knobs. Planning is randomized through an injected source;
// rendering the result is deterministic and lives elsewhere.
package planner

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/example/djinn/internal/fieldtype"
	"github.com/example/djinn/internal/namegen"
	"github.com/example/djinn/internal/schema"
	"github.com/example/djinn/internal/vocab"
)

// Request carries the planning knobs. Entity count is drawn uniformly
// from [MinEntities, MaxEntities]; callers resolve coarse size
// categories into that range before planning.
type Request struct {
	Pack            vocab.Pack
	MinEntities     int
	MaxEntities     int
	AvgFields       int
	RelationDensity float64
}

// Validate rejects out-of-range knobs before planning starts.
func (r Request) Validate() error {
	if err := r.Pack.Validate(); err != nil {
		return err
	}
	if r.MinEntities < 1 || r.MaxEntities < r.MinEntities {
		return fmt.Errorf("invalid entity count range [%d, %d]", r.MinEntities, r.MaxEntities)
	}
	if r.AvgFields < 0 {
		return fmt.Errorf("average fields per entity must be non-negative, got %d", r.AvgFields)
	}
	if r.RelationDensity < 0 || r.RelationDensity > 1 {
		return fmt.Errorf("relation density must be within [0, 1], got %g", r.RelationDensity)
	}
	return nil
}

// Planner builds schema plans. All randomness flows through the injected
// source, so a fixed seed reproduces a plan exactly.
type Planner struct {
	rng   *rand.Rand
	alloc *namegen.Allocator
}

// New returns a planner backed by the given random source.
func New(rng *rand.Rand) *Planner {
	return &Planner{rng: rng, alloc: namegen.New(rng)}
}

// NewRand returns a seeded random source for reproducible planning.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Plan synthesizes a complete schema plan. Entity names come from a
// plan-wide registry, field names from one registry per entity, and
// naming can never fail. A plan that resolves to a single entity carries
// no relations regardless of the requested density.
func (p *Planner) Plan(req Request) (*schema.Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan request: %w", err)
	}

	count := req.MinEntities + p.rng.IntN(req.MaxEntities-req.MinEntities+1)

	entityReg := namegen.NewRegistry()
	names := make([]string, count)
	for i := range names {
		names[i] = p.alloc.Entity(entityReg, req.Pack.Nouns)
	}

	density := req.RelationDensity
	if count <= 1 {
		density = 0
	}

	// Back-reference names must stay unique per target entity, so track
	// them across the whole plan.
	backrefs := make(map[string]map[string]bool)

	entities := make([]schema.EntitySpec, 0, count)
	for _, name := range names {
		fieldReg := namegen.NewRegistry()
		fields := make([]schema.FieldSpec, 0, req.AvgFields+1)

		for i := 0; i < p.fieldCount(req.AvgFields); i++ {
			fs := schema.FieldSpec{
				Name: p.alloc.Field(fieldReg, req.Pack.Fields),
				Kind: fieldtype.RandomKind(p.rng),
			}
			if fs.Kind == fieldtype.KindSlug {
				fs.SlugSource = slugSource(fields)
			}
			fields = append(fields, fs)
		}

		if density > 0 && p.rng.Float64() < density {
			fields = append(fields, p.relationField(fieldReg, req.Pack, name, names, backrefs))
		}

		entities = append(entities, schema.EntitySpec{Name: name, Fields: fields})
	}

	plan := &schema.Plan{Domain: req.Pack.Domain, Entities: entities}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("planner produced an invalid plan: %w", err)
	}
	return plan, nil
}

// fieldCount draws the number of basic fields for one entity: Poisson
// around the average with a floor of one.
func (p *Planner) fieldCount(avg int) int {
	if avg <= 0 {
		return 1
	}
	if n := p.poisson(float64(avg)); n > 1 {
		return n
	}
	return 1
}

// poisson draws from a Poisson distribution with the given mean using
// Knuth's product-of-uniforms method, which is plenty for single-digit
// means.
func (p *Planner) poisson(mean float64) int {
	limit := math.Exp(-mean)
	k := 0
	prod := 1.0
	for {
		prod *= p.rng.Float64()
		if prod <= limit {
			return k
		}
		k++
	}
}

// relationField builds one relation field for owner: a uniformly chosen
// target among the other entities, a name biased toward that target, and
// a back-reference identifier kept unique per target.
func (p *Planner) relationField(reg *namegen.Registry, pack vocab.Pack, owner string, names []string, backrefs map[string]map[string]bool) schema.FieldSpec {
	targets := make([]string, 0, len(names)-1)
	for _, n := range names {
		if n != owner {
			targets = append(targets, n)
		}
	}
	target := targets[p.rng.IntN(len(targets))]

	fieldName := p.alloc.RelationField(reg, pack.Fields, target)

	related := relatedName(owner, fieldName)
	taken := backrefs[target]
	if taken == nil {
		taken = make(map[string]bool)
		backrefs[target] = taken
	}
	if taken[related] {
		base := related
		for n := 2; ; n++ {
			related = fmt.Sprintf("%s_%d", base, n)
			if !taken[related] {
				break
			}
		}
	}
	taken[related] = true

	return schema.FieldSpec{
		Name:           fieldName,
		RelationTarget: target,
		RelatedName:    related,
	}
}

// relatedName derives the back-reference identifier for a relation from
// the owning entity and field names.
func relatedName(owner, field string) string {
	name := strings.ToLower(owner) + "_" + field + "_related"
	return strings.ReplaceAll(name, "__", "_")
}

// slugSource returns the first already-generated field whose name looks
// name- or title-like, if any.
func slugSource(fields []schema.FieldSpec) string {
	for _, f := range fields {
		if strings.Contains(f.Name, "name") || strings.Contains(f.Name, "title") {
			return f.Name
		}
	}
	return ""
}
