package tui

import (
	"github.com/brizzai/apidoc-filter/internal/tui/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"

	tea "github.com/charmbracelet/bubbletea"
)

// listKeyMap holds key bindings for the list actions.
type listKeyMap struct {
	open            key.Binding
	editDescription key.Binding
	save            key.Binding
	finish          key.Binding
	quit            key.Binding
}

type DoneMsg struct {
	Operations []*models.OperationItem
}

// OpenDetailMsg is sent when the user opens the detail page of an operation
type OpenDetailMsg struct {
	Item models.OperationItem
}

// newListKeyMap creates a new listKeyMap with default bindings.
func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Details"),
		),
		editDescription: key.NewBinding(
			key.WithKeys("E", "e"),
			key.WithHelp("E", "Edit Description"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
		finish: key.NewBinding(
			key.WithKeys("F", "f"),
			key.WithHelp("F", "Finish"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
	}
}

// ListItemModel lists the operations of the filtered document
type ListItemModel struct {
	list      list.Model
	keys      *listKeyMap
	editing   bool
	editIndex int
	editModal DescriptionEditorModal // Holds the edit modal when editing
}

// Init returns the initial command for the list model.
func (m ListItemModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the list and modal, including editing logic.
func (m ListItemModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditModeUpdate(msg)
	}
	return m.handleListModeUpdate(msg)
}

// handleEditModeUpdate handles messages when in edit mode
func (m ListItemModel) handleEditModeUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.save) {
			m.editing = false
			item := m.list.SelectedItem().(models.OperationItem)
			newDescription := ""
			if m.editModal.Changed() {
				newDescription = m.editModal.Description()
			}
			if newDescription == item.NewDescription {
				return m, nil
			}
			m.list.SetItem(m.editIndex, item.UpdatedDescription(newDescription))
			return m, m.list.NewStatusMessage(statusMessageStyle("Updated description for", item.Title()))
		}

	case editCanceledMsg:
		m.editing = false
		return m, nil

	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}
	var cmd tea.Cmd
	m.editModal, cmd = m.editModal.Update(msg)
	return m, cmd
}

// handleListModeUpdate handles messages when in list mode
func (m ListItemModel) handleListModeUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.open):
			if item, ok := m.list.SelectedItem().(models.OperationItem); ok {
				return m, func() tea.Msg { return OpenDetailMsg{Item: item} }
			}
		case key.Matches(msg, m.keys.editDescription):
			idx := m.list.Index()
			item, ok := m.list.SelectedItem().(models.OperationItem)
			if ok {
				if item.IsRemoved {
					m.list.NewStatusMessage(statusMessageStyle("Can't edit removed operations", ""))
					return m, nil
				}
				m.editing = true
				m.editIndex = idx
				m.editModal = NewEditModal(item)
				return m, nil
			}
		case key.Matches(msg, m.keys.finish):
			return m, func() tea.Msg {
				return DoneMsg{Operations: m.GetOperationUpdates()}
			}
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders either the list or the modal
func (m ListItemModel) View() string {
	if m.editing {
		return docStyle.Render(m.editModal.View())
	}
	return docStyle.Render(m.list.View())
}

// NewListItemModel creates the operation list
func NewListItemModel(operations []models.OperationItem) ListItemModel {
	listKeys := newListKeyMap()

	items := make([]list.Item, len(operations))
	for i, op := range operations {
		items[i] = op
	}
	delegate := newItemDelegate(newDelegateKeyMap())

	l := list.New(items, delegate, 0, 0)

	l.Title = titleStyle.Render("Filtered operations")
	l.SetShowFilter(true)

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			listKeys.open,
			listKeys.editDescription,
			listKeys.finish,
			listKeys.quit,
		}
	}
	return ListItemModel{list: l, keys: listKeys, editIndex: -1}
}

// GetOperationUpdates returns every operation with its updates, including
// the ones hidden by the list filter
func (m ListItemModel) GetOperationUpdates() []*models.OperationItem {
	all := m.list.Items()
	result := make([]*models.OperationItem, len(all))
	for i, item := range all {
		op := item.(models.OperationItem)
		result[i] = &op
	}
	return result
}

func (m ListItemModel) filtering() bool {
	return m.list.FilterState() == list.Filtering
}
