package descriptor

import (
	"net/http"
	"slices"
)

// Methods lists the operation slots of a path item in the order they are
// visited.
var Methods = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
}

// PathItem holds the operations available on a single path.
type PathItem struct {
	Ref        string       `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Get        *Operation   `json:"get,omitempty" yaml:"get,omitempty"`
	Put        *Operation   `json:"put,omitempty" yaml:"put,omitempty"`
	Post       *Operation   `json:"post,omitempty" yaml:"post,omitempty"`
	Delete     *Operation   `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options    *Operation   `json:"options,omitempty" yaml:"options,omitempty"`
	Head       *Operation   `json:"head,omitempty" yaml:"head,omitempty"`
	Patch      *Operation   `json:"patch,omitempty" yaml:"patch,omitempty"`
	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Operation returns the operation bound to method, or nil.
func (p *PathItem) Operation(method string) *Operation {
	if p == nil {
		return nil
	}
	switch method {
	case http.MethodGet:
		return p.Get
	case http.MethodPut:
		return p.Put
	case http.MethodPost:
		return p.Post
	case http.MethodDelete:
		return p.Delete
	case http.MethodPatch:
		return p.Patch
	case http.MethodHead:
		return p.Head
	case http.MethodOptions:
		return p.Options
	}
	return nil
}

// SetOperation binds op to method. A nil op clears the slot.
func (p *PathItem) SetOperation(method string, op *Operation) {
	switch method {
	case http.MethodGet:
		p.Get = op
	case http.MethodPut:
		p.Put = op
	case http.MethodPost:
		p.Post = op
	case http.MethodDelete:
		p.Delete = op
	case http.MethodPatch:
		p.Patch = op
	case http.MethodHead:
		p.Head = op
	case http.MethodOptions:
		p.Options = op
	}
}

// Operations returns the non-empty slots in method order.
func (p *PathItem) Operations() []*Operation {
	var ops []*Operation
	for _, method := range Methods {
		if op := p.Operation(method); op != nil {
			ops = append(ops, op)
		}
	}
	return ops
}

// IsEmpty reports whether no operation slot is set.
func (p *PathItem) IsEmpty() bool {
	return len(p.Operations()) == 0
}

// Clone returns a shallow copy of the path item. Operations are shared.
func (p *PathItem) Clone() *PathItem {
	if p == nil {
		return nil
	}
	out := *p
	out.Parameters = slices.Clone(p.Parameters)
	return &out
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags         []string              `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary      string                `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description  string                `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs         `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
	OperationID  string                `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Consumes     []string              `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces     []string              `json:"produces,omitempty" yaml:"produces,omitempty"`
	Parameters   []*Parameter          `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses    map[string]*Response  `json:"responses,omitempty" yaml:"responses,omitempty"`
	Schemes      []string              `json:"schemes,omitempty" yaml:"schemes,omitempty"`
	Deprecated   bool                  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Security     []map[string][]string `json:"security,omitempty" yaml:"security,omitempty"`
	Extensions   Extensions            `json:"-" yaml:",inline"`
}

// HasTag reports whether the operation carries tag.
func (o *Operation) HasTag(tag string) bool {
	return o != nil && slices.Contains(o.Tags, tag)
}

// Clone returns a shallow copy with its own parameter slice.
func (o *Operation) Clone() *Operation {
	if o == nil {
		return nil
	}
	out := *o
	out.Parameters = slices.Clone(o.Parameters)
	out.Tags = slices.Clone(o.Tags)
	return &out
}

// Schemas returns the body parameter and response schemas of the operation.
func (o *Operation) Schemas() []*Schema {
	var out []*Schema
	for _, param := range o.Parameters {
		if param == nil {
			continue
		}
		if param.Schema != nil {
			out = append(out, param.Schema)
		}
		if param.Items != nil {
			out = append(out, param.Items)
		}
	}
	for _, resp := range o.Responses {
		if resp != nil && resp.Schema != nil {
			out = append(out, resp.Schema)
		}
	}
	return out
}

func (o Operation) MarshalJSON() ([]byte, error) {
	type plain Operation
	return marshalExtended(plain(o), o.Extensions)
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	type plain Operation
	return Unmarshal(data, (*plain)(o))
}

// Parameter locations.
const (
	InBody     = "body"
	InQuery    = "query"
	InPath     = "path"
	InHeader   = "header"
	InFormData = "formData"
)

// Parameter describes an operation parameter. Access and ReadOnly carry the
// generator's visibility hints.
type Parameter struct {
	Ref              string        `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Name             string        `json:"name,omitempty" yaml:"name,omitempty"`
	In               string        `json:"in,omitempty" yaml:"in,omitempty"`
	Description      string        `json:"description,omitempty" yaml:"description,omitempty"`
	Required         bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Schema           *Schema       `json:"schema,omitempty" yaml:"schema,omitempty"`
	Type             string        `json:"type,omitempty" yaml:"type,omitempty"`
	Format           string        `json:"format,omitempty" yaml:"format,omitempty"`
	Items            *Schema       `json:"items,omitempty" yaml:"items,omitempty"`
	CollectionFormat string        `json:"collectionFormat,omitempty" yaml:"collectionFormat,omitempty"`
	Default          interface{}   `json:"default,omitempty" yaml:"default,omitempty"`
	Enum             []interface{} `json:"enum,omitempty" yaml:"enum,omitempty"`
	AllowEmptyValue  bool          `json:"allowEmptyValue,omitempty" yaml:"allowEmptyValue,omitempty"`
	Access           string        `json:"access,omitempty" yaml:"access,omitempty"`
	ReadOnly         bool          `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Extensions       Extensions    `json:"-" yaml:",inline"`
}

// IsBody reports whether the parameter is the request body.
func (p *Parameter) IsBody() bool {
	return p != nil && p.In == InBody
}

// Clone returns a shallow copy of the parameter.
func (p *Parameter) Clone() *Parameter {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

func (p Parameter) MarshalJSON() ([]byte, error) {
	type plain Parameter
	return marshalExtended(plain(p), p.Extensions)
}

func (p *Parameter) UnmarshalJSON(data []byte) error {
	type plain Parameter
	return Unmarshal(data, (*plain)(p))
}
