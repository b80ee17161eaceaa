// Package application implements the interactive terminal menu.
package application

import (
	"strings"

	"github.com/JonMunkholm/vendors/internal/core"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	Green    = lipgloss.Color("#00FF41")
	DimGreen = lipgloss.Color("#008F11")
	Red      = lipgloss.Color("#FF5555")
	MidGray  = lipgloss.Color("#888888")

	titleStyle    = lipgloss.NewStyle().Foreground(Green).Bold(true).MarginBottom(1)
	selectedStyle = lipgloss.NewStyle().Foreground(Green).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(DimGreen)
	errorStyle    = lipgloss.NewStyle().Foreground(Red)
	helpStyle     = lipgloss.NewStyle().Foreground(MidGray)
	outputStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(DimGreen).Padding(0, 1)
)

// Model is the bubbletea model for the vendor menu.
type Model struct {
	current *Menu
	cursor  int
	busy    bool

	outputTitle string
	output      string
	err         error
}

// NewModel builds the menu tree around service. info lines are shown
// by the Info submenu.
func NewModel(service *core.Service, info ...string) Model {
	return Model{current: buildMenuTree(service, info)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReportMsg:
		m.busy = false
		m.err = nil
		m.outputTitle = msg.Title
		m.output = msg.Body
		return m, nil

	case ErrMsg:
		m.busy = false
		m.err = msg.Err
		m.outputTitle = ""
		m.output = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.current.Items)-1 {
			m.cursor++
		}

	case "esc", "backspace":
		if m.current.Parent != nil {
			m.current = m.current.Parent
			m.cursor = 0
		}

	case "enter":
		if m.busy {
			return m, nil
		}
		item := m.current.Items[m.cursor]
		if item.Submenu != nil {
			m.current = item.Submenu
			m.cursor = 0
			return m, nil
		}
		if item.Action != nil {
			cmd := item.Action()
			if item.Label != "Quit" {
				m.busy = true
			}
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.current.Title))
	b.WriteString("\n")

	for i, item := range m.current.Items {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + item.Label))
		} else {
			b.WriteString(itemStyle.Render("  " + item.Label))
		}
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\nWorking...\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(core.FormatUserError(m.err)))
		b.WriteString("\n")
	}

	if m.output != "" {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(m.outputTitle))
		b.WriteString("\n")
		b.WriteString(outputStyle.Render(strings.TrimRight(m.output, "\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("up/down: move | enter: select | esc: back | q: quit"))
	b.WriteString("\n")

	return b.String()
}
