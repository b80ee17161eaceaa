package application

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/vendors/internal/console"
	"github.com/JonMunkholm/vendors/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

// ActionTimeout bounds a single menu action.
var ActionTimeout = 30 * time.Second

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func() tea.Cmd
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

/* ----------------------------------------
	MESSAGES
---------------------------------------- */

// ReportMsg carries a rendered report back to the model.
type ReportMsg struct {
	Title string
	Body  string
}

type ErrMsg struct{ Err error }

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree(service *core.Service, info []string) *Menu {
	submenuReports := &Menu{
		Title: "Reports",
		Items: []MenuItem{
			{Label: "General report", Action: generalReport(service)},
			{Label: "Average age by region", Action: averageAgeReport(service)},
			{Label: "Back"},
		},
	}

	submenuInfo := &Menu{
		Title: "Info",
		Items: []MenuItem{
			{Label: "Show storage", Action: func() tea.Cmd {
				return func() tea.Msg {
					body := ""
					for _, line := range info {
						body += line + "\n"
					}
					return ReportMsg{Title: "Storage", Body: body}
				}
			}},
			{Label: "Back"},
		},
	}

	root := &Menu{
		Title: "Main Menu",
		Items: []MenuItem{
			{Label: "Reports ->", Submenu: submenuReports},
			{Label: "Info ->", Submenu: submenuInfo},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		},
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	ACTIONS
---------------------------------------- */

func generalReport(service *core.Service) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), ActionTimeout)
			defer cancel()

			report, err := service.GeneralReport(ctx)
			if err != nil {
				return ErrMsg{Err: err}
			}
			return ReportMsg{
				Title: fmt.Sprintf("General report (%d vendors)", report.Len()),
				Body:  console.GeneralReportString(report, service.Now()),
			}
		}
	}
}

func averageAgeReport(service *core.Service) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), ActionTimeout)
			defer cancel()

			report, err := service.AverageAgeByRegion(ctx)
			if err != nil {
				return ErrMsg{Err: err}
			}
			return ReportMsg{
				Title: "Average age by region",
				Body:  console.AverageAgeReportString(report),
			}
		}
	}
}
