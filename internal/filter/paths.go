package filter

import (
	"strings"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"go.uber.org/zap"
)

// SelectPaths narrows paths to the requested path. An exact key match wins;
// otherwise every path starting with requested is kept, in original order.
// An empty request returns paths untouched.
func (e *Engine) SelectPaths(paths *descriptor.Paths, requested string) *descriptor.Paths {
	if requested == "" {
		return paths
	}

	out := descriptor.NewMap[*descriptor.PathItem]()
	if item, ok := paths.Get(requested); ok {
		out.Set(requested, item)
		return out
	}

	paths.Range(func(path string, item *descriptor.PathItem) bool {
		if strings.HasPrefix(path, requested) {
			out.Set(path, item)
		}
		return true
	})
	e.log.Debug("Selected paths by prefix",
		zap.String("prefix", requested),
		zap.Int("matched", out.Len()),
		zap.Int("total", paths.Len()))
	return out
}

// FilterOperationsByTags clears every operation slot whose operation carries
// none of tags and drops path items left without operations. The input is
// not modified; surviving path items are copies.
func (e *Engine) FilterOperationsByTags(paths *descriptor.Paths, tags []string) *descriptor.Paths {
	out := descriptor.NewMap[*descriptor.PathItem]()
	paths.Range(func(path string, item *descriptor.PathItem) bool {
		filtered := filterPathItem(item, tags)
		if filtered == nil || filtered.IsEmpty() {
			e.log.Info("Removed path without matching operations",
				zap.String("path", path),
				zap.Strings("tags", tags))
			return true
		}
		out.Set(path, filtered)
		return true
	})
	return out
}

func filterPathItem(item *descriptor.PathItem, tags []string) *descriptor.PathItem {
	if item == nil {
		return nil
	}
	out := item.Clone()
	for _, method := range descriptor.Methods {
		if op := out.Operation(method); op != nil && !ContainsAnyTag(op, tags) {
			out.SetOperation(method, nil)
		}
	}
	return out
}
