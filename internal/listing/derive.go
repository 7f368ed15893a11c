package listing

import (
	"github.com/brizzai/apidoc-filter/internal/descriptor"
)

// UntaggedResource names the listing that collects operations without tags.
const UntaggedResource = "default"

// Derive builds an index from the document itself. Operations are grouped by
// their first tag, one listing per tag, and each listing's models are the
// definitions transitively reachable from its operations.
func Derive(doc *descriptor.Document) *Index {
	idx := NewIndex()
	if doc == nil {
		return idx
	}

	type builder struct {
		listing *Listing
		paths   map[string]bool
		roots   []*descriptor.Schema
	}
	byResource := make(map[string]*builder)
	var order []string

	doc.Operations(func(path, _ string, op *descriptor.Operation) {
		resource := UntaggedResource
		if len(op.Tags) > 0 && op.Tags[0] != "" {
			resource = op.Tags[0]
		}
		b, ok := byResource[resource]
		if !ok {
			b = &builder{
				listing: &Listing{ResourcePath: "/" + resource},
				paths:   make(map[string]bool),
			}
			if tag := doc.Tag(resource); tag != nil {
				b.listing.Description = tag.Description
			}
			byResource[resource] = b
			order = append(order, resource)
		}
		if !b.paths[path] {
			b.paths[path] = true
			b.listing.Apis = append(b.listing.Apis, ApiDescription{Path: path})
		}
		b.roots = append(b.roots, op.Schemas()...)
	})

	for _, resource := range order {
		b := byResource[resource]
		b.listing.Models = SortedNames(reachable(doc.Definitions, b.roots))
		idx.Add(DefaultGroup, b.listing)
	}
	return idx
}

// reachable returns the definitions referenced from roots, following
// references through the definitions themselves.
func reachable(defs *descriptor.Schemas, roots []*descriptor.Schema) map[string]struct{} {
	seen := make(map[string]struct{})
	var queue []string
	for _, root := range roots {
		queue = append(queue, root.Refs()...)
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, ok := seen[name]; ok {
			continue
		}
		model, ok := defs.Get(name)
		if !ok {
			continue
		}
		seen[name] = struct{}{}
		queue = append(queue, model.Refs()...)
	}
	return seen
}
