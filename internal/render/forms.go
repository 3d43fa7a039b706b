package render

import (
	"fmt"
	"strings"

	"github.com/example/djinn/internal/schema"
)

// Forms renders the companion forms file: one ModelForm per entity in
// lexicographic order, importing the same entity names the models file
// defines. An empty plan renders a placeholder comment.
func Forms(plan *schema.Plan) string {
	names := plan.EntityNames()
	if len(names) == 0 {
		return "# No models generated, so no forms created.\n"
	}

	var b strings.Builder
	b.WriteString("from django import forms\n")
	fmt.Fprintf(&b, "from .models import %s\n\n", strings.Join(names, ", "))

	blocks := make([]string, 0, len(names))
	for _, name := range names {
		var f strings.Builder
		fmt.Fprintf(&f, "class %sForm(forms.ModelForm):\n", name)
		fmt.Fprintf(&f, "    \"\"\"Basic ModelForm for the %s model.\"\"\"\n", name)
		f.WriteString("    class Meta:\n")
		fmt.Fprintf(&f, "        model = %s\n", name)
		f.WriteString("        fields = '__all__'\n")
		blocks = append(blocks, f.String())
	}
	b.WriteString(strings.Join(blocks, "\n\n"))

	return b.String()
}
