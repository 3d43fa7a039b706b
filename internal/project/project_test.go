package project

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/djinn/internal/fieldtype"
	"github.com/example/djinn/internal/schema"
	"github.com/example/djinn/internal/templates"
)

func testScaffolder(t *testing.T) *Scaffolder {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "projects"), rand.New(rand.NewPCG(1, 1)))
}

func testInputs() Inputs {
	plan := &schema.Plan{
		Domain: "blog",
		Entities: []schema.EntitySpec{
			{Name: "Post", Fields: []schema.FieldSpec{{Name: "title", Kind: fieldtype.KindChar}}},
		},
	}
	return Inputs{
		AppName:         "blogapp",
		ModelsCode:      "# models placeholder\n",
		FormsCode:       "# forms placeholder\n",
		AdminCode:       "# admin placeholder\n",
		AppsCode:        "# apps placeholder\n",
		Plan:            plan,
		Seed:            42,
		RunID:           "run-1",
		AvgFields:       5,
		RelationDensity: 0.3,
	}
}

func TestScaffold(t *testing.T) {
	s := testScaffolder(t)

	res, err := s.Scaffold(testInputs())
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}

	if !strings.HasPrefix(res.ProjectName, "blogapp_") || len(res.ProjectName) != len("blogapp_")+projectSuffixLen {
		t.Errorf("ProjectName = %q, want blogapp_ plus %d-char suffix", res.ProjectName, projectSuffixLen)
	}

	info, err := os.Stat(filepath.Join(res.ProjectDir, "manage.py"))
	if err != nil {
		t.Fatalf("manage.py missing: %v", err)
	}
	if info.Mode()&0111 == 0 {
		t.Error("manage.py is not executable")
	}

	settings, err := os.ReadFile(filepath.Join(res.ProjectDir, filepath.FromSlash(templates.SettingsPath)))
	if err != nil {
		t.Fatalf("settings missing: %v", err)
	}
	if !strings.Contains(string(settings), "    'blogapp', # Added by generator") {
		t.Error("settings not patched with app install entry")
	}
	if strings.Contains(string(settings), templates.SettingsMarker) {
		t.Error("settings still carries the install marker")
	}

	models, err := os.ReadFile(filepath.Join(res.ProjectDir, "blogapp", "models.py"))
	if err != nil {
		t.Fatalf("models.py missing: %v", err)
	}
	if string(models) != "# models placeholder\n" {
		t.Errorf("models.py content = %q, want rendered input", models)
	}

	if initInfo, err := os.Stat(filepath.Join(res.ProjectDir, "blogapp", "__init__.py")); err != nil {
		t.Errorf("__init__.py missing: %v", err)
	} else if initInfo.Size() != 0 {
		t.Errorf("__init__.py size = %d, want empty", initInfo.Size())
	}

	for _, name := range []string{"admin.py", "apps.py"} {
		if _, err := os.Stat(filepath.Join(res.ProjectDir, "blogapp", name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}

	m, err := LoadManifest(res.ProjectDir)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if m.RunID != "run-1" || m.AppName != "blogapp" || m.Domain != "blog" || m.Seed != 42 {
		t.Errorf("manifest = %+v, want run metadata preserved", m)
	}
	if m.AvgFields != 5 || m.RelationDensity != 0.3 {
		t.Errorf("manifest knobs = %d/%g, want 5/0.3", m.AvgFields, m.RelationDensity)
	}
	if len(m.Entities) != 1 || m.Entities[0].Name != "Post" || m.Entities[0].Fields != 1 {
		t.Errorf("manifest entities = %v, want single Post with one field", m.Entities)
	}
	if got := m.EntityNames(); len(got) != 1 || got[0] != "Post" {
		t.Errorf("EntityNames() = %v, want [Post]", got)
	}

	wantFile := filepath.Join("blogapp", "models.py")
	found := false
	for _, f := range res.Files {
		if f == wantFile {
			found = true
		}
	}
	if !found {
		t.Errorf("Result.Files = %v, missing %s", res.Files, wantFile)
	}

	wantStep := "python manage.py makemigrations blogapp"
	if len(res.NextSteps) < 2 || res.NextSteps[1] != wantStep {
		t.Errorf("NextSteps = %v, want second step %q", res.NextSteps, wantStep)
	}
}

func TestScaffoldDistinctDirectories(t *testing.T) {
	s := testScaffolder(t)

	first, err := s.Scaffold(testInputs())
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}
	second, err := s.Scaffold(testInputs())
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}

	if first.ProjectDir == second.ProjectDir {
		t.Errorf("both runs used %s, want distinct directories", first.ProjectDir)
	}
}

func TestScaffoldRejectsBadAppName(t *testing.T) {
	s := testScaffolder(t)

	for _, name := range []string{"", "Blog", "9app", "my-app", "my app"} {
		in := testInputs()
		in.AppName = name
		if _, err := s.Scaffold(in); err == nil {
			t.Errorf("Scaffold() accepted app name %q", name)
		}
	}
}

func TestScaffoldCleanupOnFailure(t *testing.T) {
	s := testScaffolder(t)

	// Valid identifier, but collides with the skeleton's package dir.
	in := testInputs()
	in.AppName = "project_placeholder"

	if _, err := s.Scaffold(in); err == nil {
		t.Fatal("Scaffold() succeeded with colliding app name, want error")
	}

	entries, err := os.ReadDir(s.OutputDir())
	if err != nil {
		t.Fatalf("output dir unreadable: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir has %d entries after failed scaffold, want 0", len(entries))
	}
}

func TestInstallApp(t *testing.T) {
	t.Run("marker replaced", func(t *testing.T) {
		content := "INSTALLED_APPS = [\n    'django.contrib.admin',\n    " + templates.SettingsMarker + "\n]\n"

		got, err := installApp(content, "shop")
		if err != nil {
			t.Fatalf("installApp() error = %v", err)
		}
		if !strings.Contains(got, "\n    'shop', # Added by generator\n") {
			t.Errorf("installApp() = %q, want install entry on its own line", got)
		}
		if strings.Contains(got, templates.SettingsMarker) {
			t.Error("installApp() left the marker in place")
		}
		if !strings.Contains(got, "'django.contrib.admin',") {
			t.Error("installApp() disturbed existing entries")
		}
	})

	t.Run("fallback insertion", func(t *testing.T) {
		content := "INSTALLED_APPS = [\n    'django.contrib.admin',\n]\n"

		got, err := installApp(content, "shop")
		if err != nil {
			t.Fatalf("installApp() error = %v", err)
		}
		want := "'django.contrib.admin',\n    'shop', # Added by generator\n]"
		if !strings.Contains(got, want) {
			t.Errorf("installApp() = %q, want entry before closing bracket", got)
		}
	})

	t.Run("no anchor", func(t *testing.T) {
		if _, err := installApp("DEBUG = True\n", "shop"); err == nil {
			t.Error("installApp() accepted settings without INSTALLED_APPS")
		}
	})
}

func TestLoadManifestMissing(t *testing.T) {
	if _, err := LoadManifest(t.TempDir()); err == nil {
		t.Error("LoadManifest() succeeded with no manifest present")
	}
}
