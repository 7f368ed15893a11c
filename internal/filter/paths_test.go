package filter

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "pets", want: []string{"pets"}},
		{name: "multiple", raw: "pets,store", want: []string{"pets", "store"}},
		{name: "whitespace is kept", raw: "pets, store", want: []string{"pets", " store"}},
		{name: "empty tokens are kept", raw: "pets,,store", want: []string{"pets", "", "store"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseTags(tt.raw)); diff != "" {
				t.Errorf("ParseTags(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestContainsAnyTag(t *testing.T) {
	tests := []struct {
		name string
		op   *descriptor.Operation
		tags []string
		want bool
	}{
		{name: "nil operation", op: nil, tags: []string{"x"}, want: false},
		{name: "operation without tags", op: op(), tags: []string{"x"}, want: false},
		{name: "exact match", op: op("x", "y"), tags: []string{"y"}, want: true},
		{name: "case sensitive", op: op("Pets"), tags: []string{"pets"}, want: false},
		{name: "any of several", op: op("store"), tags: []string{"pets", "store"}, want: true},
		{name: "no requested tags", op: op("x"), tags: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsAnyTag(tt.op, tt.tags))
		})
	}
}

func TestSelectPaths(t *testing.T) {
	item := func() *descriptor.PathItem { return &descriptor.PathItem{Get: op()} }
	paths := pathsOf(
		"/pets", item(),
		"/pets/{id}", item(),
		"/petshop", item(),
		"/store/order", item(),
		"/Pets/legacy", item(),
	)

	tests := []struct {
		name      string
		requested string
		want      []string
	}{
		{name: "exact match wins over prefix", requested: "/pets", want: []string{"/pets"}},
		{name: "prefix match keeps order", requested: "/pet", want: []string{"/pets", "/pets/{id}", "/petshop"}},
		{name: "prefix is case sensitive", requested: "/Pet", want: []string{"/Pets/legacy"}},
		{name: "no match", requested: "/users", want: nil},
		{name: "root prefix selects everything", requested: "/", want: paths.Keys()},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.SelectPaths(paths, tt.requested)
			if diff := cmp.Diff(tt.want, got.Keys()); diff != "" {
				t.Errorf("SelectPaths(%q) keys mismatch (-want +got):\n%s", tt.requested, diff)
			}
			for _, key := range got.Keys() {
				assert.Same(t, paths.Value(key), got.Value(key), "selected entries must be the original items")
			}
		})
	}

	t.Run("empty request is a no-op", func(t *testing.T) {
		assert.Same(t, paths, e.SelectPaths(paths, ""))
	})
}

func TestFilterOperationsByTags(t *testing.T) {
	mixed := &descriptor.PathItem{Get: op("x"), Post: op("y"), Delete: op("x", "z")}
	onlyY := &descriptor.PathItem{Put: op("y")}
	untagged := &descriptor.PathItem{Get: op()}
	paths := pathsOf("/mixed", mixed, "/only-y", onlyY, "/untagged", untagged)

	e := newTestEngine()
	got := e.FilterOperationsByTags(paths, []string{"x"})

	assert.Equal(t, []string{"/mixed"}, got.Keys())
	filtered := got.Value("/mixed")
	require.NotNil(t, filtered)
	assert.Same(t, mixed.Get, filtered.Get)
	assert.Same(t, mixed.Delete, filtered.Delete)
	assert.Nil(t, filtered.Post)

	// the input is untouched
	assert.Equal(t, 3, paths.Len())
	assert.NotNil(t, mixed.Post)
	assert.NotSame(t, mixed, filtered)
}

func TestFilterOperationsByTags_AllSlots(t *testing.T) {
	item := &descriptor.PathItem{}
	for _, method := range descriptor.Methods {
		item.SetOperation(method, op("keep-"+method))
	}
	paths := pathsOf("/all", item)

	got := newTestEngine().FilterOperationsByTags(paths, []string{"keep-" + http.MethodHead, "keep-" + http.MethodOptions})
	filtered := got.Value("/all")
	require.NotNil(t, filtered)

	for _, method := range descriptor.Methods {
		keep := method == http.MethodHead || method == http.MethodOptions
		assert.Equal(t, keep, filtered.Operation(method) != nil, "method %s", method)
	}
}

func TestFilterOperationsByTags_Idempotent(t *testing.T) {
	doc := sampleDocument()
	e := newTestEngine()
	tags := ParseTags("x,users")

	once := e.FilterOperationsByTags(doc.Paths, tags)
	twice := e.FilterOperationsByTags(once, tags)

	onceJSON, err := json.Marshal(once)
	require.NoError(t, err)
	twiceJSON, err := json.Marshal(twice)
	require.NoError(t, err)
	assert.JSONEq(t, string(onceJSON), string(twiceJSON))
	assert.Equal(t, once.Keys(), twice.Keys())
}
