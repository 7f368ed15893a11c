package filter

import (
	"fmt"
	"strings"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"go.uber.org/zap"
)

// pass carries the state of a single filtering run over a working copy.
type pass struct {
	*Engine
	doc         *descriptor.Document
	synthesized []string
	removed     int
	// sortedDefinitions is set once the definitions were pruned, which
	// orders them by name. Variants registered afterwards keep that order.
	sortedDefinitions bool
}

// filterAccess removes hidden and read-only parameters and points update
// operations at write variants of their body models. Touched path items,
// operations and parameters are replaced by copies.
func (p *pass) filterAccess() error {
	for _, path := range p.doc.Paths.Keys() {
		item := p.doc.Paths.Value(path)
		var updated *descriptor.PathItem
		for _, method := range descriptor.Methods {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			filtered, err := p.filterOperation(path, method, op)
			if err != nil {
				return err
			}
			if filtered == op {
				continue
			}
			if updated == nil {
				updated = item.Clone()
			}
			updated.SetOperation(method, filtered)
		}
		if updated != nil {
			p.doc.Paths.Set(path, updated)
		}
	}
	return nil
}

func (p *pass) isUpdate(op *descriptor.Operation) bool {
	return op.Extensions.Has(p.opts.UpdateMarkers...)
}

func (p *pass) isRequestHidden(param *descriptor.Parameter) bool {
	marker := p.opts.RequestHiddenMarker
	return marker != "" && param.Access != "" && strings.Contains(param.Access, marker)
}

func (p *pass) filterOperation(path, method string, op *descriptor.Operation) (*descriptor.Operation, error) {
	update := p.isUpdate(op)
	changed := false

	kept := make([]*descriptor.Parameter, 0, len(op.Parameters))
	for _, param := range op.Parameters {
		if param == nil {
			kept = append(kept, param)
			continue
		}
		if (update && param.ReadOnly) || p.isRequestHidden(param) {
			p.log.Info("Removed parameter",
				zap.String("path", path),
				zap.String("method", method),
				zap.String("name", param.Name),
				zap.Bool("readOnly", param.ReadOnly),
				zap.String("access", param.Access))
			p.removed++
			changed = true
			continue
		}
		kept = append(kept, param)
	}

	if update {
		for i, param := range kept {
			if !param.IsBody() || param.Schema == nil {
				continue
			}
			schema, err := p.writeSchema(param.Schema)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", method, path, err)
			}
			if schema != param.Schema {
				rewritten := param.Clone()
				rewritten.Schema = schema
				kept[i] = rewritten
				changed = true
			}
		}
	}

	if !changed {
		return op, nil
	}
	out := op.Clone()
	out.Parameters = kept
	return out, nil
}

// writeSchema returns the schema a body parameter of an update operation
// should use. Direct and array-of references to models with enough read-only
// properties are redirected to the model's write variant; anything else is
// returned unchanged.
func (p *pass) writeSchema(schema *descriptor.Schema) (*descriptor.Schema, error) {
	if name := schema.SimpleRef(); name != "" {
		nameUpdate := name + p.opts.UpdateSuffix
		ok, err := p.modelUpdate(name, nameUpdate)
		if err != nil || !ok {
			return schema, err
		}
		ref := descriptor.NewRef(nameUpdate)
		ref.Description = schema.Description
		ref.Example = schema.Example
		return ref, nil
	}

	if schema.IsArray() {
		name := schema.Items.SimpleRef()
		if name == "" {
			return schema, nil
		}
		nameUpdate := name + p.opts.UpdateSuffix
		ok, err := p.modelUpdate(name, nameUpdate)
		if err != nil || !ok {
			return schema, err
		}
		array := *schema
		items := *schema.Items
		items.Ref = descriptor.RefTo(nameUpdate)
		array.Items = &items
		return &array, nil
	}

	return schema, nil
}

// modelUpdate decides whether simpleName deserves a write variant named
// nameUpdate and registers the variant on first use. The variant is a copy of
// the model without its read-only properties. It reports true when the
// variant exists after the call.
func (p *pass) modelUpdate(simpleName, nameUpdate string) (bool, error) {
	defs := p.doc.Definitions
	model, ok := defs.Get(simpleName)
	if !ok || model == nil {
		return false, fmt.Errorf("%w: definition %q not found", ErrInvalidReference, simpleName)
	}
	_, exists := defs.Get(nameUpdate)

	threshold := p.opts.ReadOnlyThreshold
	count := 0
	var readOnly []string
	model.Properties.Range(func(name string, prop *descriptor.Schema) bool {
		if prop == nil || !prop.ReadOnly {
			return true
		}
		count++
		readOnly = append(readOnly, name)
		return !exists || count < threshold
	})

	if count < threshold {
		return false, nil
	}
	if !exists {
		variant := model.Clone()
		variant.Title = nameUpdate
		for _, name := range readOnly {
			variant.Properties.Delete(name)
		}
		variant.Required = withoutNames(variant.Required, readOnly)
		defs.Set(nameUpdate, variant)
		if p.sortedDefinitions {
			p.doc.Definitions = sortDefinitions(defs)
		}
		p.synthesized = append(p.synthesized, nameUpdate)
		p.log.Info("Synthesized write model",
			zap.String("model", simpleName),
			zap.String("variant", nameUpdate),
			zap.Strings("removed", readOnly))
	}
	return true, nil
}

func withoutNames(names, drop []string) []string {
	if len(names) == 0 {
		return names
	}
	skip := make(map[string]bool, len(drop))
	for _, name := range drop {
		skip[name] = true
	}
	var out []string
	for _, name := range names {
		if !skip[name] {
			out = append(out, name)
		}
	}
	return out
}

// ModelUpdate runs the write variant synthesis for a single model directly on
// doc, registering the variant in doc's definitions when it is created.
func (e *Engine) ModelUpdate(doc *descriptor.Document, simpleName, nameUpdate string) (bool, error) {
	if doc.Definitions == nil {
		doc.Definitions = descriptor.NewMap[*descriptor.Schema]()
	}
	p := &pass{Engine: e, doc: doc}
	return p.modelUpdate(simpleName, nameUpdate)
}
