package tui

import (
	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/filter"
	"github.com/brizzai/apidoc-filter/internal/parser"
	"github.com/brizzai/apidoc-filter/internal/tui/models"
)

// BuildItems lists the operations of a filtering result. source is the
// document the result was filtered from and is used to count dropped
// parameters. adjuster may be nil.
func BuildItems(source *descriptor.Document, res *filter.Result, adjuster *parser.Adjuster) []models.OperationItem {
	synthesized := make(map[string]bool, len(res.Synthesized))
	for _, name := range res.Synthesized {
		synthesized[name] = true
	}

	var items []models.OperationItem
	res.Document.Operations(func(path, method string, op *descriptor.Operation) {
		item := models.OperationItem{Path: path, Method: method, Operation: op}
		if orig := sourceOperation(source, path, method); orig != nil {
			item.RemovedParameters = len(orig.Parameters) - len(op.Parameters)
		}
		if name := bodyModel(op); synthesized[name] {
			item.WriteVariant = name
		}
		if adjuster != nil {
			item.NewDescription = adjuster.GetDescription(path, method, "")
			item.IsRemoved = !adjuster.IsSelected(path, method)
		}
		items = append(items, item)
	})
	return items
}

func sourceOperation(doc *descriptor.Document, path, method string) *descriptor.Operation {
	if doc == nil {
		return nil
	}
	item, ok := doc.Paths.Get(path)
	if !ok {
		return nil
	}
	return item.Operation(method)
}

// bodyModel returns the model the body parameter of op refers to, looking
// through arrays.
func bodyModel(op *descriptor.Operation) string {
	for _, p := range op.Parameters {
		if !p.IsBody() || p.Schema == nil {
			continue
		}
		if p.Schema.IsArray() {
			return p.Schema.Items.SimpleRef()
		}
		return p.Schema.SimpleRef()
	}
	return ""
}
