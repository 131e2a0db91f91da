// Package subject normalizes subject names so that user input such as
// "mathematics" or " MATHEMATICS " resolves to the catalog's "Mathematics".
package subject

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrNotFound is returned when a subject is not known.
var ErrNotFound = errors.New("subject not found")

// NotFoundError carries the requested subject and the available ones.
type NotFoundError struct {
	Subject   string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("subject %q not found (available: %v)", e.Subject, e.Available)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Key returns the case-folded lookup key for a subject name.
func Key(name string) string {
	return cases.Fold().String(Clean(name))
}

// DisplayName returns the canonical display form of a new subject name,
// e.g. "computer science" → "Computer Science".
func DisplayName(name string) string {
	return cases.Title(language.English).String(Clean(name))
}

// Clean applies NFKC normalization and collapses whitespace runs. It keeps
// the caller's casing.
func Clean(name string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(name)), " ")
}

// Index resolves subject names to their canonical display names.
// The zero value is not usable; create one with NewIndex.
type Index struct {
	names map[string]string // key → display name
}

// NewIndex builds an index over the given display names.
func NewIndex(names ...string) *Index {
	idx := &Index{names: make(map[string]string, len(names))}
	for _, n := range names {
		idx.Add(n)
	}
	return idx
}

// Add registers a display name as-is.
func (i *Index) Add(name string) {
	i.names[Key(name)] = Clean(name)
}

// Resolve returns the display name matching name.
func (i *Index) Resolve(name string) (string, bool) {
	n, ok := i.names[Key(name)]
	return n, ok
}

// Require resolves name or returns a *NotFoundError listing the known names.
func (i *Index) Require(name string) (string, error) {
	if n, ok := i.Resolve(name); ok {
		return n, nil
	}
	return "", &NotFoundError{Subject: name, Available: i.Names()}
}

// Names returns all display names sorted alphabetically.
func (i *Index) Names() []string {
	out := make([]string, 0, len(i.names))
	for _, n := range i.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of subjects.
func (i *Index) Len() int { return len(i.names) }
