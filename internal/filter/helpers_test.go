package filter

import (
	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/listing"
	"go.uber.org/zap"
)

func newTestEngine() *Engine {
	return New(DefaultOptions(), zap.NewNop())
}

func op(tags ...string) *descriptor.Operation {
	return &descriptor.Operation{Tags: tags}
}

func pathsOf(entries ...interface{}) *descriptor.Paths {
	paths := descriptor.NewMap[*descriptor.PathItem]()
	for i := 0; i+1 < len(entries); i += 2 {
		paths.Set(entries[i].(string), entries[i+1].(*descriptor.PathItem))
	}
	return paths
}

func model(props ...interface{}) *descriptor.Schema {
	s := &descriptor.Schema{Type: "object", Properties: descriptor.NewMap[*descriptor.Schema]()}
	for i := 0; i+1 < len(props); i += 2 {
		s.Properties.Set(props[i].(string), &descriptor.Schema{Type: "string", ReadOnly: props[i+1].(bool)})
	}
	return s
}

func definitionsOf(entries ...interface{}) *descriptor.Schemas {
	defs := descriptor.NewMap[*descriptor.Schema]()
	for i := 0; i+1 < len(entries); i += 2 {
		defs.Set(entries[i].(string), entries[i+1].(*descriptor.Schema))
	}
	return defs
}

// sampleDocument has two paths under /a, each with one tagged operation, and
// a user resource with an update operation.
func sampleDocument() *descriptor.Document {
	userRef := descriptor.NewRef("User")
	userRef.Description = "user payload"

	return &descriptor.Document{
		Swagger: "2.0",
		Info:    &descriptor.Info{Title: "sample", Version: "1.0"},
		Tags: []*descriptor.Tag{
			{Name: "x", Description: "x things"},
			{Name: "y", Description: "y things"},
			{Name: "users", Description: "user things"},
		},
		Paths: pathsOf(
			"/a/1", &descriptor.PathItem{Get: &descriptor.Operation{
				Tags:       []string{"x"},
				Parameters: []*descriptor.Parameter{{Name: "body", In: descriptor.InBody, Schema: descriptor.NewRef("A1")}},
			}},
			"/a/2", &descriptor.PathItem{Get: &descriptor.Operation{
				Tags:       []string{"y"},
				Parameters: []*descriptor.Parameter{{Name: "body", In: descriptor.InBody, Schema: descriptor.NewRef("A2")}},
			}},
			"/users/{id}", &descriptor.PathItem{
				Get: &descriptor.Operation{
					Tags: []string{"users"},
					Parameters: []*descriptor.Parameter{
						{Name: "id", In: descriptor.InPath, Required: true, Type: "string"},
						{Name: "trace", In: descriptor.InHeader, Type: "string", Access: "RequestHidden"},
					},
				},
				Put: &descriptor.Operation{
					Tags:       []string{"users"},
					Extensions: descriptor.Extensions{"x-update": "1"},
					Parameters: []*descriptor.Parameter{
						{Name: "id", In: descriptor.InPath, Type: "string", ReadOnly: true},
						{Name: "user", In: descriptor.InBody, Schema: userRef},
					},
				},
			},
		),
		Definitions: definitionsOf(
			"A2", model("name", false),
			"A1", model("name", false),
			"User", model("id", true, "created", true, "updated", true, "name", false),
			"Unused", model("x", false),
		),
	}
}

func sampleIndex() *listing.Index {
	idx := listing.NewIndex()
	idx.Add("default", &listing.Listing{
		ResourcePath: "/a1",
		Apis:         []listing.ApiDescription{{Path: "/a/1"}},
		Models:       []string{"A1"},
	})
	idx.Add("default", &listing.Listing{
		ResourcePath: "/a2",
		Apis:         []listing.ApiDescription{{Path: "/a/2"}},
		Models:       []string{"A2"},
	})
	idx.Add("default", &listing.Listing{
		ResourcePath: "/users",
		Apis:         []listing.ApiDescription{{Path: "/users/{id}"}},
		Models:       []string{"User"},
	})
	return idx
}
