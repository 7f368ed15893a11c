package tui

import (
	"fmt"
	"strings"

	"github.com/brizzai/apidoc-filter/internal/tui/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MainPageKeyMap holds key bindings for the main page actions
type MainPageKeyMap struct {
	open key.Binding
	quit key.Binding
}

func newMainPageKeyMap() *MainPageKeyMap {
	return &MainPageKeyMap{
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Browse operations"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("ctrl+c/q", "Quit"),
		),
	}
}

// Summary describes the filtering pass shown on the main page.
type Summary struct {
	Title       string
	Request     string
	Definitions int
	Synthesized []string
}

// MainPageModel represents the main landing page of the application
type MainPageModel struct {
	keys    *MainPageKeyMap
	width   int
	height  int
	items   []models.OperationItem
	summary Summary
}

// OpenListItemMsg is sent when the user chooses to open the operation list
type OpenListItemMsg struct{}

// NewMainPageModel creates a new main page model
func NewMainPageModel(items []models.OperationItem, summary Summary) MainPageModel {
	return MainPageModel{
		keys:    newMainPageKeyMap(),
		items:   items,
		summary: summary,
	}
}

// Init initializes the model
func (m MainPageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the main page
func (m MainPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.open):
			return m, func() tea.Msg {
				return OpenListItemMsg{}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the main page
func (m MainPageModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(m.summary.Title)

	descStyle := lipgloss.NewStyle().
		Padding(1, 0).
		Width(m.width - 4).
		Align(lipgloss.Center)

	text := fmt.Sprintf("Request: %s\n\nThe filtered document keeps %s and %s.",
		m.summary.Request,
		pluralize(len(m.items), "operation"),
		pluralize(m.summary.Definitions, "definition"),
	)
	if len(m.summary.Synthesized) > 0 {
		text += "\nWrite variants: " + strings.Join(m.summary.Synthesized, ", ")
	}
	description := descStyle.Render(text)

	previewStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#f56a96")).
		Padding(1, 1).
		Width(m.width - 10).
		Align(lipgloss.Left)

	var preview strings.Builder
	maxPreview := 5
	shown := min(len(m.items), maxPreview)
	for _, item := range m.items[:shown] {
		preview.WriteString(fmt.Sprintf("%s %s\n", item.Method, item.Path))
	}
	if len(m.items) > maxPreview {
		preview.WriteString(fmt.Sprintf("\n... and %d more operations", len(m.items)-maxPreview))
	}
	if len(m.items) == 0 {
		preview.WriteString("No operation matches the request")
	}

	instructionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f56a96")).
		Padding(1, 0).
		Width(m.width - 4).
		Align(lipgloss.Center)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#A49FA5"}).
		Width(m.width - 4).
		Align(lipgloss.Center)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		description,
		"",
		previewStyle.Render(preview.String()),
		"",
		instructionStyle.Render("Press ENTER to browse the operations"),
		"",
		helpStyle.Render("Press q or Ctrl+C to quit"),
	)

	return docStyle.Render(content)
}

// pluralize returns count followed by the noun, pluralized when needed
func pluralize(count int, singular string) string {
	if count == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %ss", count, singular)
}
