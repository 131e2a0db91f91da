// Package lexicon holds the ordered word substitution tables.
package lexicon

import "fmt"

// Substitution replaces every occurrence of From with To.
type Substitution struct {
	From string
	To   string
}

// Table is an ordered list of substitutions. Entries are applied one after
// another, so a later entry sees the output of the earlier ones.
type Table []Substitution

// Validate reports the first entry with an empty key.
func (t Table) Validate() error {
	for i, s := range t {
		if s.From == "" {
			return fmt.Errorf("entry %d: empty key (replacement %q)", i, s.To)
		}
	}
	return nil
}

// Lookup returns the replacement for an exact key.
func (t Table) Lookup(from string) (string, bool) {
	for _, s := range t {
		if s.From == from {
			return s.To, true
		}
	}
	return "", false
}

// Simplify returns the complex-term → plain-phrase table.
func Simplify() Table {
	return clone(simplifyTable)
}

// Enhance returns the plain-term → elaborate-phrase table.
func Enhance() Table {
	return clone(enhanceTable)
}

func clone(t Table) Table {
	out := make(Table, len(t))
	copy(out, t)
	return out
}

var simplifyTable = Table{
	{"polygon", "shape"},
	{"classified", "grouped"},
	{"metabolic", "body process"},
	{"generate", "make"},
	{"photosynthesis", "plant food-making process"},
	{"chloroplasts", "plant cells"},
	{"interior", "inside"},
	{"sum", "total"},
	{"chemical", "special"},
	{"carbon dioxide", "air"},
	{"glucose", "sugar"},
	{"oxygen", "air"},
	{"reactions", "changes"},
	{"chlorophyll", "green part"},
	{"metaphor", "comparison"},
	{"symbolism", "hidden meaning"},
	{"protagonist", "main character"},
	{"antagonist", "bad character"},
	{"narrative", "story"},
	{"literary", "book-related"},
	{"analyze", "look at closely"},
	{"interpret", "explain meaning"},
	{"alliteration", "same-sounding words"},
	{"syntax", "word order"},
	{"quadratic", "U-shaped"},
	{"equation", "math problem"},
	{"mitochondria", "energy parts"},
	{"eukaryotic", "complex cells"},
	{"prokaryotic", "simple cells"},
	{"metaphorically", "in a comparing way"},
	{"foreshadowing", "hints about the future"},
	{"imagery", "word pictures"},
	{"personification", "giving human traits"},
	{"hyperbole", "big exaggeration"},
}

var enhanceTable = Table{
	{"shape", "geometrical structure"},
	{"grouped", "categorized based on properties"},
	{"body process", "biochemical reaction in living organisms"},
	{"make", "synthesize using complex mechanisms"},
	{"plant food-making process", "photosynthesis involving complex biochemical reactions"},
	{"angles", "interior angles"},
	{"sides", "line segments"},
	{"plants", "photosynthetic organisms"},
	{"sunlight", "electromagnetic radiation"},
	{"water", "H₂O molecules"},
	{"air", "atmospheric gases"},
	{"food", "carbohydrates and energy-rich compounds"},
	{"comparison", "metaphorical representation"},
	{"hidden meaning", "symbolic representation of abstract concepts"},
	{"main character", "central figure of the narrative"},
	{"story", "narrative structure with complex plot elements"},
	{"look at", "critically examine and deconstruct"},
	{"meaning", "thematic significance and contextual implications"},
	{"character", "literary figure with psychological depth"},
	{"writing", "composition with rhetorical techniques"},
	{"math problem", "mathematical equation"},
	{"energy parts", "mitochondria (the powerhouse of the cell)"},
	{"complex cells", "eukaryotic cells with membrane-bound organelles"},
	{"simple cells", "prokaryotic cells lacking nucleus"},
	{"U-shaped", "quadratic parabolic curve"},
	{"hints", "foreshadowing narrative devices"},
	{"word pictures", "vivid sensory imagery"},
	{"human traits", "anthropomorphic personification"},
	{"big exaggeration", "hyperbolic expression"},
}
