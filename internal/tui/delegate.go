package tui

import (
	"github.com/brizzai/apidoc-filter/internal/tui/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// newItemDelegate renders operations and handles the per-item keys.
func newItemDelegate(keys *delegateKeyMap) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.UpdateFunc = func(msg tea.Msg, m *list.Model) tea.Cmd {
		item, ok := m.SelectedItem().(models.OperationItem)
		if !ok {
			return nil
		}
		keyMsg, ok := msg.(tea.KeyMsg)
		if !ok {
			return nil
		}

		switch {
		case key.Matches(keyMsg, keys.toggle):
			updated := item.ToggleRemoved()
			m.SetItem(m.Index(), updated)
			if updated.IsRemoved {
				return m.NewStatusMessage(statusMessageStyle("Dropped", item.Title(), "from the route selection"))
			}
			return m.NewStatusMessage(statusMessageStyle("Selected", item.Title(), "again"))

		case key.Matches(keyMsg, keys.restore):
			if item.NewDescription == "" {
				return nil
			}
			m.SetItem(m.Index(), item.UpdatedDescription(""))
			return m.NewStatusMessage(statusMessageStyle("Restored the summary of", item.Title()))
		}
		return nil
	}

	help := []key.Binding{keys.toggle, keys.restore}
	d.ShortHelpFunc = func() []key.Binding {
		return help
	}
	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{help}
	}

	return d
}

type delegateKeyMap struct {
	toggle  key.Binding
	restore key.Binding
}

func newDelegateKeyMap() *delegateKeyMap {
	return &delegateKeyMap{
		toggle: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "Toggle route selection"),
		),
		restore: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Restore summary"),
		),
	}
}
