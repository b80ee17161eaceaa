package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/vendors/internal/core"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSource struct {
	lines []string
	err   error
}

func (m memSource) ReadLines(context.Context) ([]string, error) { return m.lines, m.err }
func (m memSource) AppendLine(context.Context, string) error    { return nil }

func newTestModel(src memSource) Model {
	store := core.NewStore(src, src)
	return NewModel(core.NewService(store), "backend: file")
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestLinkParents(t *testing.T) {
	root := buildMenuTree(nil, nil)

	assert.Nil(t, root.Parent)
	reports := root.Items[0].Submenu
	require.NotNil(t, reports)
	assert.Same(t, root, reports.Parent)

	back := reports.Items[len(reports.Items)-1]
	assert.Equal(t, "Back", back.Label)
	assert.Same(t, root, back.Submenu)
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(memSource{})

	m, _ = press(t, m, "down")
	m, _ = press(t, m, "down")
	m, _ = press(t, m, "down") // clamps at the last item
	assert.Equal(t, 2, m.cursor)

	m, _ = press(t, m, "up")
	m, _ = press(t, m, "up")
	m, _ = press(t, m, "enter")
	assert.Equal(t, "Reports", m.current.Title)
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, "esc")
	assert.Equal(t, "Main Menu", m.current.Title)
}

func TestModel_GeneralReportAction(t *testing.T) {
	m := newTestModel(memSource{lines: []string{"1,Jane,07/25/1984,TX", "2,John,01/02/1990,CA"}})

	m, _ = press(t, m, "enter") // Reports
	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	msg := cmd()
	report, ok := msg.(ReportMsg)
	require.True(t, ok, "expected ReportMsg, got %T", msg)
	assert.Contains(t, report.Title, "2 vendors")

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.False(t, m.busy)

	view := m.View()
	assert.Contains(t, view, "Jane")
	assert.Contains(t, view, "Nombre")
}

func TestModel_AverageAgeAction(t *testing.T) {
	m := newTestModel(memSource{lines: []string{"1,Jane,07/25/1984,TX"}})

	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "down")
	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)

	updated, _ := m.Update(cmd())
	view := updated.(Model).View()
	assert.Contains(t, view, "Edad Promedio")
	assert.Contains(t, view, "TX")
}

func TestModel_ActionError(t *testing.T) {
	m := newTestModel(memSource{err: errors.New("no such file")})

	m, _ = press(t, m, "enter")
	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)

	msg := cmd()
	_, isErr := msg.(ErrMsg)
	require.True(t, isErr, "expected ErrMsg, got %T", msg)

	updated, _ := m.Update(msg)
	view := updated.(Model).View()
	assert.Contains(t, view, "SRC001")
}

func TestModel_InfoShowsStorage(t *testing.T) {
	m := newTestModel(memSource{})

	m, _ = press(t, m, "down")
	m, _ = press(t, m, "enter") // Info
	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)

	updated, _ := m.Update(cmd())
	assert.True(t, strings.Contains(updated.(Model).View(), "backend: file"))
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(memSource{})

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
