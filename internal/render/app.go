package render

import (
	"fmt"
	"strings"

	"github.com/example/djinn/internal/schema"
)

// Admin renders the admin.py source, registering every model with the
// default admin site.
func Admin(plan *schema.Plan) string {
	var b strings.Builder
	b.WriteString("from django.contrib import admin\n")

	names := plan.EntityNames()
	if len(names) == 0 {
		b.WriteString("\n# Register your models here.\n")
		return b.String()
	}

	b.WriteString("\nfrom .models import ")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "admin.site.register(%s)\n", name)
	}

	return b.String()
}

// AppConfig renders the apps.py source for the generated app package.
func AppConfig(appName string) string {
	return fmt.Sprintf(
		"from django.apps import AppConfig\n\n\nclass %sConfig(AppConfig):\n    default_auto_field = 'django.db.models.BigAutoField'\n    name = '%s'\n",
		configClassName(appName), appName,
	)
}

// configClassName upper-cases each underscore-separated word, the same way
// Django's startapp names the generated AppConfig class. App names are
// validated ASCII identifiers before reaching here.
func configClassName(appName string) string {
	parts := strings.Split(appName, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}
