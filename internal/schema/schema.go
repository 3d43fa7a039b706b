// Package schema defines the intermediate representation produced by
// planning and consumed by rendering.
package schema

import (
	"fmt"
	"sort"

	"github.com/example/djinn/internal/fieldtype"
)

// FieldSpec describes a single field in a planned entity. Kind is
// meaningful only for non-relation fields; relation fields render from
// RelationTarget and RelatedName instead.
type FieldSpec struct {
	Name           string
	Kind           fieldtype.Kind
	RelationTarget string // entity this field points at, empty otherwise
	RelatedName    string // back-reference identifier on the target, relations only
	SlugSource     string // field a slug derives from, slug kind only
}

// IsRelation reports whether the field points at another entity.
func (f FieldSpec) IsRelation() bool {
	return f.RelationTarget != ""
}

// EntitySpec describes a planned entity. Fields keeps generation order;
// rendering sorts independently of it.
type EntitySpec struct {
	Name   string
	Fields []FieldSpec
}

// Field returns the named field.
func (e EntitySpec) Field(name string) (FieldSpec, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// SortedFields returns a copy of the fields ordered by name.
func (e EntitySpec) SortedFields() []FieldSpec {
	fields := make([]FieldSpec, len(e.Fields))
	copy(fields, e.Fields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

// Relations returns the entity's relation fields in generation order.
func (e EntitySpec) Relations() []FieldSpec {
	var rels []FieldSpec
	for _, f := range e.Fields {
		if f.IsRelation() {
			rels = append(rels, f)
		}
	}
	return rels
}

// Plan is the complete result of schema planning. Entities keeps
// generation order; rendering sorts independently of it.
type Plan struct {
	Domain   string
	Entities []EntitySpec
}

// Entity returns the named entity.
func (p *Plan) Entity(name string) (EntitySpec, bool) {
	for _, e := range p.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return EntitySpec{}, false
}

// EntityNames returns the entity names in sorted order.
func (p *Plan) EntityNames() []string {
	names := make([]string, len(p.Entities))
	for i, e := range p.Entities {
		names[i] = e.Name
	}
	sort.Strings(names)
	return names
}

// SortedEntities returns a copy of the entities ordered by name.
func (p *Plan) SortedEntities() []EntitySpec {
	entities := make([]EntitySpec, len(p.Entities))
	copy(entities, p.Entities)
	sort.Slice(entities, func(i, j int) bool { return entities[i].Name < entities[j].Name })
	return entities
}

// FieldCount returns the total number of fields across all entities.
func (p *Plan) FieldCount() int {
	n := 0
	for _, e := range p.Entities {
		n += len(e.Fields)
	}
	return n
}

// RelationCount returns the total number of relation fields in the plan.
func (p *Plan) RelationCount() int {
	n := 0
	for _, e := range p.Entities {
		n += len(e.Relations())
	}
	return n
}

// Validate checks the structural invariants rendering relies on: unique
// entity names, unique field names per entity, relation targets that
// resolve within the plan and never point at their owner, no relations
// in a single-entity plan, and back-reference names that stay unique per
// target entity.
func (p *Plan) Validate() error {
	entities := make(map[string]bool, len(p.Entities))
	for _, e := range p.Entities {
		if entities[e.Name] {
			return fmt.Errorf("duplicate entity name %q", e.Name)
		}
		entities[e.Name] = true
	}

	backrefs := make(map[string]string)
	for _, e := range p.Entities {
		fields := make(map[string]bool, len(e.Fields))
		for _, f := range e.Fields {
			if fields[f.Name] {
				return fmt.Errorf("entity %q has duplicate field %q", e.Name, f.Name)
			}
			fields[f.Name] = true

			if !f.IsRelation() {
				continue
			}
			if len(p.Entities) == 1 {
				return fmt.Errorf("single-entity plan must not contain relations, found %s.%s", e.Name, f.Name)
			}
			if f.RelationTarget == e.Name {
				return fmt.Errorf("entity %q field %q relates to itself", e.Name, f.Name)
			}
			if !entities[f.RelationTarget] {
				return fmt.Errorf("entity %q field %q relates to unknown entity %q", e.Name, f.Name, f.RelationTarget)
			}
			if f.RelatedName != "" {
				key := f.RelationTarget + "." + f.RelatedName
				if owner, ok := backrefs[key]; ok {
					return fmt.Errorf("back-reference %q on %q claimed by both %s.%s and %q", f.RelatedName, f.RelationTarget, e.Name, f.Name, owner)
				}
				backrefs[key] = e.Name + "." + f.Name
			}
		}
	}
	return nil
}
