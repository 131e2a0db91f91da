package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/abhisek/adaptlearn/internal/datafile"
	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/subject"
)

//go:embed materials.yaml
var builtinMaterials []byte

// Material is one study resource.
type Material struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Key is the identifier recorded in progress: the explicit ID, or the URL.
func (m Material) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return m.URL
}

// Catalog maps subject → tier → ordered materials.
type Catalog struct {
	index     *subject.Index
	materials map[string]map[level.Tier][]Material // display name → tier → materials
}

type fileFormat struct {
	Subjects []struct {
		Name  string                `json:"name"`
		Tiers map[string][]Material `json:"tiers"`
	} `json:"subjects"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse("materials.yaml", builtinMaterials)
}

// Load reads a catalog file in the built-in YAML format.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(path, raw)
}

// Parse decodes and validates catalog YAML.
func Parse(source string, raw []byte) (*Catalog, error) {
	var ff fileFormat
	if err := datafile.Decode(source, raw, materialsSchema, &ff); err != nil {
		return nil, err
	}

	c := &Catalog{
		index:     subject.NewIndex(),
		materials: make(map[string]map[level.Tier][]Material),
	}
	for _, s := range ff.Subjects {
		if _, dup := c.index.Resolve(s.Name); dup {
			return nil, fmt.Errorf("%s: duplicate subject %q", source, s.Name)
		}
		c.index.Add(s.Name)
		name, _ := c.index.Resolve(s.Name)

		tiers := make(map[level.Tier][]Material, len(s.Tiers))
		for key, ms := range s.Tiers {
			tier, ok := level.TierFromCatalogKey(key)
			if !ok {
				return nil, fmt.Errorf("%s: subject %q: unknown tier %q", source, s.Name, key)
			}
			tiers[tier] = ms
		}
		c.materials[name] = tiers
	}
	return c, nil
}

// Lookup resolves a subject name to its catalog display name.
func (c *Catalog) Lookup(name string) (string, bool) {
	return c.index.Resolve(name)
}

// Require resolves a subject or returns a *subject.NotFoundError.
func (c *Catalog) Require(name string) (string, error) {
	return c.index.Require(name)
}

// Subjects returns the catalog's subjects sorted by name.
func (c *Catalog) Subjects() []string {
	return c.index.Names()
}

// Materials returns a copy of the materials for (subject, tier) in catalog
// order. Unknown subjects or tiers yield an empty slice.
func (c *Catalog) Materials(name string, tier level.Tier) []Material {
	n, ok := c.index.Resolve(name)
	if !ok {
		return []Material{}
	}
	src := c.materials[n][tier]
	out := make([]Material, len(src))
	copy(out, src)
	return out
}

var materialsSchema = &datafile.Schema{
	Name: "materials",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"subjects"},
		"properties": map[string]any{
			"subjects": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"name", "tiers"},
					"properties": map[string]any{
						"name": map[string]any{"type": "string", "minLength": 1},
						"tiers": map[string]any{
							"type":                 "object",
							"propertyNames":        map[string]any{"enum": []string{"beginner", "intermediate", "advanced"}},
							"additionalProperties": materialListSchema,
						},
					},
				},
			},
		},
	},
}

var materialListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"title", "url"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "string"},
			"title":       map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string"},
			"url":         map[string]any{"type": "string", "minLength": 1},
		},
	},
}
