package content

import (
	_ "embed"
	"fmt"

	"github.com/abhisek/adaptlearn/internal/datafile"
	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/subject"
)

//go:embed texts.yaml
var builtinTexts []byte

// Texts holds one canonical text per tier.
type Texts map[level.Tier]string

// Table maps a subject display name to its canonical texts.
type Table map[string]Texts

// DefaultTable returns the built-in canonical texts.
func DefaultTable() (Table, error) {
	return ParseTable("texts.yaml", builtinTexts)
}

// ParseTable decodes and validates a canonical text file.
func ParseTable(source string, raw []byte) (Table, error) {
	var ff struct {
		Subjects []struct {
			Name  string            `json:"name"`
			Texts map[string]string `json:"texts"`
		} `json:"subjects"`
	}
	if err := datafile.Decode(source, raw, textsSchema, &ff); err != nil {
		return nil, err
	}

	table := make(Table, len(ff.Subjects))
	seen := subject.NewIndex()
	for _, s := range ff.Subjects {
		if _, dup := seen.Resolve(s.Name); dup {
			return nil, fmt.Errorf("%s: duplicate subject %q", source, s.Name)
		}
		seen.Add(s.Name)

		texts := make(Texts, len(s.Texts))
		for key, text := range s.Texts {
			tier, ok := level.TierFromContentKey(key)
			if !ok {
				return nil, fmt.Errorf("%s: subject %q: unknown tier %q", source, s.Name, key)
			}
			texts[tier] = text
		}
		table[s.Name] = texts
	}
	return table, nil
}

var textsSchema = &datafile.Schema{
	Name: "texts",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"subjects"},
		"properties": map[string]any{
			"subjects": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"name", "texts"},
					"properties": map[string]any{
						"name": map[string]any{"type": "string", "minLength": 1},
						"texts": map[string]any{
							"type":                 "object",
							"required":             []string{"basic", "intermediate", "advanced"},
							"additionalProperties": false,
							"properties": map[string]any{
								"basic":        map[string]any{"type": "string", "minLength": 1},
								"intermediate": map[string]any{"type": "string", "minLength": 1},
								"advanced":     map[string]any{"type": "string", "minLength": 1},
							},
						},
					},
				},
			},
		},
	},
}
