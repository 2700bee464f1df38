package dna

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
)

// RoleAll is the filter value that matches every role bucket.
const RoleAll = "all"

// foldCase returns s case-folded. Casers are stateful, so each call gets its own.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// Library is an ordered, read-only collection of descriptors.
type Library struct {
	// Source names where the library was loaded from, for diagnostics.
	Source string

	entries []Descriptor
	index   map[string]int
}

// NewLibrary builds a library from already normalized descriptors.
// Later duplicates of an id are ignored.
func NewLibrary(ds ...Descriptor) *Library {
	lib := &Library{}
	for _, d := range ds {
		lib.add(d)
	}
	return lib
}

func (l *Library) add(d Descriptor) {
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if _, dup := l.index[d.ID]; dup {
		return
	}
	l.index[d.ID] = len(l.entries)
	l.entries = append(l.entries, d)
}

// Len returns the number of descriptors.
func (l *Library) Len() int { return len(l.entries) }

// All returns the descriptors in library order.
func (l *Library) All() []Descriptor {
	return slices.Clone(l.entries)
}

// Find returns the descriptor with the given id.
func (l *Library) Find(id string) (Descriptor, error) {
	if i, ok := l.index[id]; ok {
		return l.entries[i], nil
	}
	return Descriptor{}, errors.New(errors.ErrCodeNotFound, "descriptor %q not in library", id)
}

// Filter returns descriptors whose role bucket contains role, ignoring case.
// An empty role or [RoleAll] matches everything.
func (l *Library) Filter(role string) []Descriptor {
	role = foldCase(strings.TrimSpace(role))
	if role == "" || role == RoleAll {
		return l.All()
	}
	var out []Descriptor
	for _, d := range l.entries {
		if strings.Contains(foldCase(d.Role), role) {
			out = append(out, d)
		}
	}
	return out
}

// Search returns descriptors whose source JSON contains term, ignoring
// case. Descriptors built in memory are matched on id, name and role.
func (l *Library) Search(term string) []Descriptor {
	term = foldCase(strings.TrimSpace(term))
	if term == "" {
		return l.All()
	}
	var out []Descriptor
	for _, d := range l.entries {
		hay := string(d.raw)
		if hay == "" {
			hay = d.ID + " " + d.Name + " " + d.Role
		}
		if strings.Contains(foldCase(hay), term) {
			out = append(out, d)
		}
	}
	return out
}

// Roles returns the distinct role buckets in sorted order.
func (l *Library) Roles() []string {
	seen := make(map[string]bool)
	var roles []string
	for _, d := range l.entries {
		if d.Role != "" && !seen[d.Role] {
			seen[d.Role] = true
			roles = append(roles, d.Role)
		}
	}
	slices.Sort(roles)
	return roles
}
