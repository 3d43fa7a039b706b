package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestName is the manifest file written at every project root.
const ManifestName = "djinn.yaml"

// Manifest records how a project was generated so later commands can
// identify and verify it without reparsing the sources.
type Manifest struct {
	RunID           string           `yaml:"run_id"`
	CreatedAt       time.Time        `yaml:"created_at"`
	AppName         string           `yaml:"app_name"`
	Domain          string           `yaml:"domain"`
	Seed            uint64           `yaml:"seed"`
	AvgFields       int              `yaml:"avg_fields"`
	RelationDensity float64          `yaml:"relation_density"`
	Entities        []ManifestEntity `yaml:"entities"`
	Fields          int              `yaml:"fields"`
	Relations       int              `yaml:"relations"`
}

// ManifestEntity summarizes one generated model.
type ManifestEntity struct {
	Name      string `yaml:"name"`
	Fields    int    `yaml:"fields"`
	Relations int    `yaml:"relations"`
}

// EntityNames returns the manifest's model names in recorded order.
func (m *Manifest) EntityNames() []string {
	names := make([]string, len(m.Entities))
	for i, e := range m.Entities {
		names[i] = e.Name
	}
	return names
}

func writeManifest(projectDir string, in Inputs) error {
	entities := make([]ManifestEntity, 0, len(in.Plan.Entities))
	for _, e := range in.Plan.SortedEntities() {
		entities = append(entities, ManifestEntity{
			Name:      e.Name,
			Fields:    len(e.Fields),
			Relations: len(e.Relations()),
		})
	}

	m := Manifest{
		RunID:           in.RunID,
		CreatedAt:       time.Now().UTC(),
		AppName:         in.AppName,
		Domain:          in.Plan.Domain,
		Seed:            in.Seed,
		AvgFields:       in.AvgFields,
		RelationDensity: in.RelationDensity,
		Entities:        entities,
		Fields:          in.Plan.FieldCount(),
		Relations:       in.Plan.RelationCount(),
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(projectDir, ManifestName), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads the manifest from a project directory.
func LoadManifest(projectDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
