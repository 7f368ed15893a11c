package tui

import (
	"github.com/brizzai/apidoc-filter/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the main application model that manages page switching
type AppModel struct {
	mainPage   MainPageModel
	listView   ListItemModel
	detailView DetailPageModel
	exportView ExportView
	docsPath   string
	page       string // "main", "list", "detail" or "export"
}

// NewAppModel creates a new AppModel for the operations of a filtered document
func NewAppModel(items []models.OperationItem, summary Summary, docsPath string) AppModel {
	return AppModel{
		mainPage:   NewMainPageModel(items, summary),
		listView:   NewListItemModel(items),
		exportView: ExportView{}, // set up on DoneMsg
		docsPath:   docsPath,
		page:       "main",
	}
}

// Init initializes the AppModel
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.mainPage.Init(),
		m.listView.Init(),
	)
}

// Update handles app-level messages and delegates to the appropriate page model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case OpenListItemMsg:
		m.page = "list"
		return m, m.listView.Init()

	case OpenDetailMsg:
		m.page = "detail"
		m.detailView = NewDetailPageModel(msg.Item, m.docsPath)
		return m, m.detailView.Init()

	case BackToListMsg:
		m.page = "list"
		return m, nil

	case DoneMsg:
		m.page = "export"
		m.exportView = NewExportView(msg.Operations)
		return m, m.exportView.Init()

	case BackToMainMsg:
		m.page = "list"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && m.page == "list" && !m.listView.filtering() && !m.listView.editing {
			m.page = "main"
			return m, nil
		}

	case tea.WindowSizeMsg:
		var cmd tea.Cmd
		var tempModel tea.Model

		// Update all models with the window size
		tempModel, cmd = m.mainPage.Update(msg)
		m.mainPage = tempModel.(MainPageModel)
		cmds = append(cmds, cmd)

		tempModel, cmd = m.listView.Update(msg)
		m.listView = tempModel.(ListItemModel)
		cmds = append(cmds, cmd)

		tempModel, cmd = m.detailView.Update(msg)
		m.detailView = tempModel.(DetailPageModel)
		cmds = append(cmds, cmd)

		tempModel, cmd = m.exportView.Update(msg)
		m.exportView = tempModel.(ExportView)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	// Delegate message to the active page
	var cmd tea.Cmd
	var tempModel tea.Model
	switch m.page {
	case "main":
		tempModel, cmd = m.mainPage.Update(msg)
		m.mainPage = tempModel.(MainPageModel)
	case "list":
		tempModel, cmd = m.listView.Update(msg)
		m.listView = tempModel.(ListItemModel)
	case "detail":
		tempModel, cmd = m.detailView.Update(msg)
		m.detailView = tempModel.(DetailPageModel)
	case "export":
		tempModel, cmd = m.exportView.Update(msg)
		m.exportView = tempModel.(ExportView)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the active page
func (m AppModel) View() string {
	switch m.page {
	case "main":
		return m.mainPage.View()
	case "detail":
		return m.detailView.View()
	case "export":
		return m.exportView.View()
	default: // list
		return m.listView.View()
	}
}

// Page returns the name of the active page.
func (m AppModel) Page() string {
	return m.page
}

// GetOperationUpdates delegates to the list view
func (m AppModel) GetOperationUpdates() []*models.OperationItem {
	return m.listView.GetOperationUpdates()
}

// IsFinished checks if the user has completed the TUI flow
// by verifying they've reached the export page
func (m AppModel) IsFinished() bool {
	return m.exportView.Success
}
