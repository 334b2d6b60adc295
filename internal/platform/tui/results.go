package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colosseum/internal/score"
	"github.com/vovakirdan/colosseum/internal/storage"
)

// Results layout constants
const (
	resultsMinWidth = 50 // Narrowest table worth drawing
	nameMaxWidth    = 16 // Longest player name column
)

// ResultsModel shows the final table of a match, its titles and, when a
// ledger is attached, the session standings.
type ResultsModel struct {
	result    score.Result
	standings []storage.Standing
	table     table.Model
	width     int
	height    int
}

// NewResultsModel creates a results view for a finished match.
func NewResultsModel(res score.Result, standings []storage.Standing, width, height int) ResultsModel {
	m := ResultsModel{
		result:    res,
		standings: standings,
		width:     width,
		height:    height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ResultsModel) createTable() table.Model {
	nameWidth := nameMaxWidth
	if m.width > 0 && m.width < resultsMinWidth+nameMaxWidth {
		nameWidth = max(8, m.width-resultsMinWidth)
	}
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: nameWidth},
		{Title: "Hits", Width: 5},
		{Title: "Kills", Width: 5},
		{Title: "Survived", Width: 9},
		{Title: "Score", Width: 7},
	}

	height := len(m.result.Stats) + 1
	if m.height > 0 {
		height = min(height, max(m.height-12, 3))
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the result.
func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.result.Stats))
	for i, s := range m.result.Stats {
		survived := formatSeconds(s.Survive)
		if s.Alive {
			survived += "*"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", s.Rank),
			s.Name,
			fmt.Sprintf("%d", s.AttackPoint),
			fmt.Sprintf("%d", s.KillPoint),
			survived,
			fmt.Sprintf("%.1f", s.Score),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// SetSize adapts the table to a new window size.
func (m *ResultsModel) SetSize(width, height int) {
	m.width, m.height = width, height
	m.table = m.createTable()
	m.updateTableRows()
}

// Update scrolls the table.
func (m ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results.
func (m ResultsModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("RESULTS - %s", formatSeconds(m.result.Duration))
	b.WriteString(headerStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	if len(m.result.Stats) == 0 {
		b.WriteString(dimStyle.Italic(true).Render("No one entered the arena."))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	for _, t := range m.result.Titles {
		b.WriteString(bannerStyle.Render(t.Name))
		b.WriteString(" ")
		b.WriteString(strings.Join(t.Players, ", "))
		b.WriteString("\n")
	}

	if len(m.standings) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("SESSION"))
		b.WriteString("\n")
		for _, st := range m.standings {
			fmt.Fprintf(&b, "%-*s %3d wins %4d kills  avg %.1f\n",
				nameMaxWidth, truncate(st.Name, nameMaxWidth), st.Wins, st.Kills, st.AvgScore)
		}
	}

	return b.String()
}

// formatSeconds renders a duration as seconds with one decimal.
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
