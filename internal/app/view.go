package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwulff/roster/internal/store"
	"github.com/jwulff/roster/internal/ui"
)

var menuTitles = []string{"Home", "People", "Add", "Delete", "Quit"}

// View renders the full TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderMenu())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.loadErr != nil {
		sections = append(sections, m.renderLoadError())
	} else {
		switch m.active {
		case MenuPeople:
			sections = append(sections, m.renderPeople())
		default:
			sections = append(sections, m.renderHome())
		}
	}

	// Error bar
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}

	sections = append(sections, m.help.View(m.keys))

	return strings.Join(sections, "\n")
}

func (m Model) renderMenu() string {
	var parts []string
	for _, title := range menuTitles {
		first, rest := title[:1], title[1:]
		restStyle := ui.MenuTextStyle
		if title == m.active.String() {
			restStyle = ui.MenuActiveStyle
		}
		parts = append(parts, ui.MenuKeyStyle.Render(first)+restStyle.Render(rest))
	}
	return ui.TitleStyle.Render("roster") + "  " + strings.Join(parts, ui.DividerStyle.Render(" | "))
}

func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: menu(1) + divider(1) + error(1) + footer(1)
	return max(6, m.height-4)
}

func (m Model) renderHome() string {
	lines := []string{
		"",
		"Welcome",
		"",
		"to",
		"",
		ui.AccentStyle.Render("person-CLI"),
		"",
		"Press 'p' to access people, 'a' to add a random new person and 'd' to delete the currently selected person.",
	}
	body := lipgloss.NewStyle().
		Width(max(10, m.width-4)).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
	return ui.PanelStyle.Render(ui.PanelTitleStyle.Render("Home") + "\n" + body)
}

func (m Model) renderLoadError() string {
	lines := []string{
		ui.ErrorStyle.Render("Cannot read people"),
		"",
		ui.ErrorTextStyle.Render(truncateToWidth(m.loadErr.Error(), max(10, m.width-4))),
		ui.DimStyle.Render(storeHint(m.loadErr)),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPeople() string {
	if len(m.people) == 0 {
		return ui.PanelStyle.Render(ui.PanelTitleStyle.Render("People") + "\n" +
			ui.DimStyle.Render("No people yet. Press 'a' to add one."))
	}

	selected, ok := m.cursor.Selected()
	if !ok {
		selected = 0
	}
	p, err := store.At(m.people, selected)
	if err != nil {
		// The cursor is rebased on every load; render the first row rather than fail.
		selected, p = 0, m.people[0]
	}

	listW := max(16, m.width*20/100)
	detailW := max(30, m.width-listW-6)

	list := m.renderPersonList(selected, listW, m.contentHeight()-2)
	detail := renderPersonDetail(p, detailW)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) renderPersonList(selected, width, height int) string {
	height = max(1, height-1) // title line

	// Keep the selection visible.
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := min(len(m.people), start+height)

	lines := []string{ui.PanelTitleStyle.Render(fmt.Sprintf("People (%d)", len(m.people)))}
	for i := start; i < end; i++ {
		name := truncateToWidth(m.people[i].Name, width)
		if i == selected {
			lines = append(lines, ui.SelectedStyle.Render(padRight(name, width)))
		} else {
			lines = append(lines, padRight(name, width))
		}
	}
	return ui.PanelStyle.Render(strings.Join(lines, "\n"))
}

var detailColumns = []table.Column{
	{Title: "ID", Width: 8},
	{Title: "Name", Width: 10},
	{Title: "Category", Width: 8},
	{Title: "Age", Width: 3},
	{Title: "Created At", Width: 23},
}

func renderPersonDetail(p store.Person, width int) string {
	row := table.Row{
		strconv.FormatUint(p.ID, 10),
		p.Name,
		p.Category,
		strconv.FormatUint(uint64(p.Age), 10),
		p.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
	}

	styles := table.DefaultStyles()
	styles.Selected = lipgloss.NewStyle()
	t := table.New(
		table.WithColumns(detailColumns),
		table.WithRows([]table.Row{row}),
		table.WithHeight(4),
		table.WithWidth(width),
		table.WithStyles(styles),
	)

	return ui.PanelStyle.Render(ui.PanelTitleStyle.Render("Detail") + "\n" + t.View())
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

// Helpers

func padRight(s string, width int) string {
	// Get visible length (ignoring ANSI codes)
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	// Simple truncation for non-styled strings
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}
