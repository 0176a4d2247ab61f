package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/term-snake/internal/storage"
)

var (
	scoreTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginBottom(1)

	scoreBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
)

// scoreTable builds a table of finished games, best first.
func scoreTable(games []storage.GameEntry) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Length", Width: 8},
		{Title: "Ticks", Width: 8},
		{Title: "Cause", Width: 6},
		{Title: "Date", Width: 14},
	}

	rows := make([]table.Row, len(games))
	for i, g := range games {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", g.Score),
			fmt.Sprintf("%d", g.Length),
			fmt.Sprintf("%d", g.Ticks),
			g.Cause,
			g.EndedAt.Format("Jan 02 15:04"),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2), // header and its border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// Nothing is selectable in a printed table.
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}

// RenderScoreboard renders training statistics and the best games as a
// static block for printing to stdout.
func RenderScoreboard(stats *storage.Stats, games []storage.GameEntry) string {
	var b strings.Builder

	b.WriteString(scoreTitleStyle.Render("HIGH SCORES - Snake"))
	b.WriteString("\n")

	if len(games) == 0 {
		b.WriteString(emptyStyle.Render("No games recorded yet.\nPlay with --db to record one!"))
		b.WriteString("\n")
	} else {
		b.WriteString(scoreBoxStyle.Render(scoreTable(games).View()))
		b.WriteString("\n")
	}

	if stats != nil {
		fmt.Fprintf(&b, "\nSessions: %d  Samples: %d  Games: %d\n", stats.Sessions, stats.Samples, stats.GamesCount)
		fmt.Fprintf(&b, "Best: %d  Average: %.1f  Food rate: %.3f\n", stats.HighScore, stats.AvgScore, stats.FoodRate)
		if !stats.LastPlayed.IsZero() {
			fmt.Fprintf(&b, "Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
		}
	}

	return b.String()
}
