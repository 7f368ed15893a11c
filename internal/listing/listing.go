// Package listing indexes which model definitions belong to which API paths.
//
// A listing groups the API descriptions of one resource together with the
// models those APIs use. The filter consults the index to decide which
// definitions survive once the path set has been narrowed.
package listing

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
)

// DefaultGroup is the group name used when none is given.
const DefaultGroup = "default"

// MatchMode controls how matching API entries contribute models.
type MatchMode string

const (
	// MatchFirst stops scanning a listing at its first surviving API entry.
	MatchFirst MatchMode = "first"
	// MatchAll unions the models of every surviving API entry of a listing.
	MatchAll MatchMode = "all"
)

// ParseMatchMode validates a configured match mode. Empty selects MatchFirst.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case "", MatchFirst:
		return MatchFirst, nil
	case MatchAll:
		return MatchAll, nil
	}
	return "", fmt.Errorf("unknown listing match mode %q", s)
}

// ApiDescription is a single path entry of a listing.
type ApiDescription struct {
	Path        string   `json:"path" yaml:"path"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Models      []string `json:"models,omitempty" yaml:"models,omitempty"`
}

// Listing groups the API descriptions of one resource with their models.
type Listing struct {
	ResourcePath string           `json:"resource_path" yaml:"resource_path"`
	Description  string           `json:"description,omitempty" yaml:"description,omitempty"`
	Apis         []ApiDescription `json:"apis" yaml:"apis"`
	Models       []string         `json:"models,omitempty" yaml:"models,omitempty"`
}

// HasPath reports whether one of the listing's APIs is bound to path.
func (l *Listing) HasPath(path string) bool {
	for _, api := range l.Apis {
		if api.Path == path {
			return true
		}
	}
	return false
}

// Index maps a group name to its listings.
type Index struct {
	Groups map[string][]*Listing `json:"groups" yaml:"groups"`
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{Groups: make(map[string][]*Listing)}
}

// Add appends a listing to group.
func (idx *Index) Add(group string, l *Listing) {
	if idx.Groups == nil {
		idx.Groups = make(map[string][]*Listing)
	}
	if group == "" {
		group = DefaultGroup
	}
	idx.Groups[group] = append(idx.Groups[group], l)
}

// Len returns the total number of listings.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	n := 0
	for _, listings := range idx.Groups {
		n += len(listings)
	}
	return n
}

// Listings returns every listing, groups visited in name order.
func (idx *Index) Listings() []*Listing {
	if idx == nil {
		return nil
	}
	groups := make([]string, 0, len(idx.Groups))
	for name := range idx.Groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	var out []*Listing
	for _, name := range groups {
		out = append(out, idx.Groups[name]...)
	}
	return out
}

// FindListingsContaining returns the listings with an API bound to path.
func (idx *Index) FindListingsContaining(path string) []*Listing {
	var out []*Listing
	for _, l := range idx.Listings() {
		if l.HasPath(path) {
			out = append(out, l)
		}
	}
	return out
}

// ModelsForPath returns the sorted model names associated with path.
func (idx *Index) ModelsForPath(path string) []string {
	names := idx.ModelNames(func(p string) bool { return p == path }, MatchAll)
	return SortedNames(names)
}

// ModelNames collects the models of every listing that has an API entry for
// which contains returns true.
func (idx *Index) ModelNames(contains func(path string) bool, mode MatchMode) map[string]struct{} {
	names := make(map[string]struct{})
	for _, l := range idx.Listings() {
		matched := false
		for _, api := range l.Apis {
			if !contains(api.Path) {
				continue
			}
			if !matched {
				for _, m := range l.Models {
					names[m] = struct{}{}
				}
				matched = true
			}
			for _, m := range api.Models {
				names[m] = struct{}{}
			}
			if mode != MatchAll {
				break
			}
		}
	}
	return names
}

// SortedNames returns the set members in ascending order.
func SortedNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Parse decodes a JSON or YAML listings index.
func Parse(data []byte) (*Index, error) {
	idx := NewIndex()
	if err := descriptor.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("failed to parse listings: %w", err)
	}
	if idx.Groups == nil {
		idx.Groups = make(map[string][]*Listing)
	}
	return idx, nil
}

// Load reads a listings index from a file.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings file: %w", err)
	}
	return Parse(data)
}
