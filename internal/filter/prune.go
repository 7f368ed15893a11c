package filter

import (
	"slices"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/listing"
	"go.uber.org/zap"
)

// PruneDefinitions keeps only the definitions the listings associate with the
// document's surviving paths, ordered by name. It is a no-op when no path is
// left.
func (e *Engine) PruneDefinitions(doc *descriptor.Document, idx *listing.Index) {
	if doc.Paths.Len() == 0 {
		return
	}

	names := idx.ModelNames(doc.Paths.Has, e.opts.ListingMatch)
	kept := descriptor.NewMap[*descriptor.Schema]()
	for _, name := range listing.SortedNames(names) {
		if model, ok := doc.Definitions.Get(name); ok {
			kept.Set(name, model)
		}
	}
	e.log.Debug("Pruned definitions",
		zap.Int("before", doc.Definitions.Len()),
		zap.Int("after", kept.Len()))
	doc.Definitions = kept
}

// sortDefinitions returns a copy of defs ordered by name.
func sortDefinitions(defs *descriptor.Schemas) *descriptor.Schemas {
	sorted := descriptor.NewMap[*descriptor.Schema]()
	names := defs.Keys()
	slices.Sort(names)
	for _, name := range names {
		sorted.Set(name, defs.Value(name))
	}
	return sorted
}

// PruneTags keeps the declared tags still used by a surviving operation, in
// first-use order. declared is the original tag registry, independent of the
// tags currently visible on doc. It reports false when doc has no paths left,
// in which case the tags are cleared.
func (e *Engine) PruneTags(doc *descriptor.Document, declared []*descriptor.Tag) bool {
	if doc.Paths.Len() == 0 {
		doc.Tags = nil
		return false
	}

	registry := make(map[string]*descriptor.Tag, len(declared))
	for _, tag := range declared {
		if tag != nil {
			if _, dup := registry[tag.Name]; !dup {
				registry[tag.Name] = tag
			}
		}
	}

	seen := make(map[string]bool)
	tags := make([]*descriptor.Tag, 0)
	doc.Operations(func(_, _ string, op *descriptor.Operation) {
		for _, name := range op.Tags {
			if seen[name] {
				continue
			}
			if tag, ok := registry[name]; ok {
				seen[name] = true
				tags = append(tags, tag)
			}
		}
	})
	doc.Tags = tags
	return true
}
