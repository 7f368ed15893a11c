package tui

import (
	"testing"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	app, ok := next.(AppModel)
	require.True(t, ok, "expected AppModel, got %T", next)
	return app
}

func TestAppModel_Navigation(t *testing.T) {
	items := []models.OperationItem{
		{Path: "/store/order", Method: "POST", Operation: &descriptor.Operation{Summary: "Place an order", Tags: []string{"store"}}},
		{Path: "/store/inventory", Method: "GET", Operation: &descriptor.Operation{Summary: "Returns inventories"}},
	}
	summary := Summary{Title: "Petstore", Request: "path=/store", Definitions: 1}

	m := NewAppModel(items, summary, "/v2/api-docs")
	assert.Equal(t, "main", m.Page())

	m = update(t, m, OpenListItemMsg{})
	assert.Equal(t, "list", m.Page())
	assert.Len(t, m.GetOperationUpdates(), 2)

	m = update(t, m, OpenDetailMsg{Item: items[0]})
	assert.Equal(t, "detail", m.Page())
	view := m.View()
	assert.Contains(t, view, "POST /store/order")
	assert.Contains(t, view, "/v2/api-docs?path=/store/order")

	m = update(t, m, BackToListMsg{})
	assert.Equal(t, "list", m.Page())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "main", m.Page())

	m = update(t, m, OpenListItemMsg{})
	m = update(t, m, DoneMsg{Operations: m.GetOperationUpdates()})
	assert.Equal(t, "export", m.Page())
	assert.False(t, m.IsFinished())
	assert.Contains(t, m.View(), "Export Adjustments")

	m = update(t, m, BackToMainMsg{})
	assert.Equal(t, "list", m.Page())
}

func TestDetailPageModel_Keys(t *testing.T) {
	m := NewDetailPageModel(models.OperationItem{Path: "/pet", Method: "GET", Operation: &descriptor.Operation{}}, "")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackToListMsg{}, cmd())

	assert.Contains(t, m.View(), "none")
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 operation", pluralize(1, "operation"))
	assert.Equal(t, "3 operations", pluralize(3, "operation"))
}
