package vocab

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadPackFile reads a vocabulary pack from a YAML file.
func LoadPackFile(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("failed to read vocabulary pack: %w", err)
	}

	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pack{}, fmt.Errorf("failed to parse vocabulary pack %s: %w", path, err)
	}

	if p.Domain == "" {
		// Minimal packs may omit the domain; use the file name.
		p.Domain = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := p.Validate(); err != nil {
		return Pack{}, fmt.Errorf("invalid vocabulary pack %s: %w", path, err)
	}
	return p, nil
}

// LoadDir merges every .yaml/.yml pack found in dir into the catalog and
// returns the number of packs loaded. Files load in name order, so when
// two packs claim the same domain the later file wins. A missing
// directory is not an error; it means no custom packs are installed.
func (c *Catalog) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read vocabulary directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	loaded := 0
	for _, name := range names {
		p, err := LoadPackFile(filepath.Join(dir, name))
		if err != nil {
			return loaded, err
		}
		if err := c.Add(p); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}
