// Package render turns schema plans into source text. Rendering is a
// pure function of plan content: entities and fields print in
// lexicographic order no matter how the plan was constructed, so
// structurally identical plans produce byte-identical output.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/djinn/internal/fieldtype"
	"github.com/example/djinn/internal/schema"
)

// Models renders the model definitions file for a plan.
func Models(plan *schema.Plan) string {
	var b strings.Builder

	b.WriteString(importBlock(plan))

	blocks := make([]string, 0, len(plan.Entities))
	for _, e := range plan.SortedEntities() {
		blocks = append(blocks, modelBlock(e))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))

	return b.String()
}

// importBlock renders the sorted, deduplicated import lines. The uuid
// import appears only when some field kind needs it.
func importBlock(plan *schema.Plan) string {
	lines := []string{
		"from django.conf import settings # Example if User model needed",
		"from django.db import models",
		"from django.utils.text import slugify",
	}
	if needsAuxiliaryImport(plan) {
		lines = append(lines, "import uuid")
	}

	seen := make(map[string]bool, len(lines))
	unique := lines[:0]
	for _, line := range lines {
		if !seen[line] {
			seen[line] = true
			unique = append(unique, line)
		}
	}
	sort.Strings(unique)

	return strings.Join(unique, "\n") + "\n\n"
}

func needsAuxiliaryImport(plan *schema.Plan) bool {
	for _, e := range plan.Entities {
		for _, f := range e.Fields {
			if !f.IsRelation() && f.Kind.RequiresAuxiliaryImport() {
				return true
			}
		}
	}
	return false
}

// modelBlock renders one entity: docstring, Meta with the derived
// labels and ordering hint, the sorted field declarations, and the
// display method.
func modelBlock(e schema.EntitySpec) string {
	lower := strings.ToLower(e.Name)
	fields := e.SortedFields()

	var b strings.Builder
	fmt.Fprintf(&b, "class %s(models.Model):\n", e.Name)
	fmt.Fprintf(&b, "    \"\"\"Represents a %s in the system.\"\"\"\n", lower)
	b.WriteString("    class Meta:\n")
	fmt.Fprintf(&b, "        verbose_name = '%s'\n", lower)
	fmt.Fprintf(&b, "        verbose_name_plural = '%s'\n", pluralize(lower))

	if field, descending, ok := OrderingHint(fields); ok {
		prefix := ""
		if descending {
			prefix = "-"
		}
		fmt.Fprintf(&b, "        ordering = ['%s%s']\n", prefix, field)
	} else {
		b.WriteString("        # ordering = ['id'] # Default ordering\n")
	}
	b.WriteString("\n")

	if len(fields) == 0 {
		b.WriteString("    # No fields defined for this model yet.\n")
		b.WriteString("    pass\n")
	} else {
		for _, f := range fields {
			fmt.Fprintf(&b, "    %s = %s\n", f.Name, fieldDefinition(f))
		}
		b.WriteString("\n")
	}

	b.WriteString("    def __str__(self):\n")
	if field, ok := DisplayField(fields); ok {
		fmt.Fprintf(&b, "        return str(self.%s) if self.%s else f'{self.__class__.__name__} (ID: {self.pk})'\n", field, field)
	} else {
		b.WriteString("        return f'{self.__class__.__name__} object (ID: {self.pk})'\n")
	}
	b.WriteString("\n")

	return b.String()
}

// fieldDefinition renders the declaration for one field, covering the
// relation form and the slug derivation note.
func fieldDefinition(f schema.FieldSpec) string {
	if f.IsRelation() {
		return fmt.Sprintf(
			"models.ForeignKey('%s', on_delete=models.SET_NULL, null=True, blank=True, related_name='%s', db_index=True)",
			f.RelationTarget, f.RelatedName,
		)
	}

	def := f.Kind.Definition()
	if f.Kind == fieldtype.KindSlug {
		if f.SlugSource != "" {
			def += fmt.Sprintf(" # Auto-populated from '%s' field in save()", f.SlugSource)
		} else {
			def += " # Should be auto-populated in save()"
		}
	}
	return def
}

// pluralize derives the display label: append "s", or "es" when the
// lowered name already ends in "s".
func pluralize(lower string) string {
	if strings.HasSuffix(lower, "s") {
		return lower + "es"
	}
	return lower + "s"
}
