package formatter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/flick/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// MoviesTable renders records as a bordered table for terminal output.
func MoviesTable(records []models.MovieRecord) string {
	t := newTable("ID", "Title", "Status", "Rating", "Review")
	for _, m := range records {
		t.Row(m.ID.String(), m.Title, m.Status.Label(), m.RatingText(), truncate(m.ReviewText(), 40))
	}
	return t.Render()
}

// CatalogRow is one catalog entry with its optional global rating text.
type CatalogRow struct {
	Entry  models.CatalogEntry
	Stars  string
	Rating string
}

// CatalogTable renders catalog rows as a bordered table.
func CatalogTable(rows []CatalogRow) string {
	t := newTable("ID", "Title", "Year", "Genres", "Global Rating")
	for _, r := range rows {
		rating := "-"
		if r.Rating != "" {
			rating = r.Stars + " " + r.Rating
		}
		t.Row(strconv.Itoa(r.Entry.ID), r.Entry.Title, strconv.Itoa(r.Entry.Year), strings.Join(r.Entry.Genres, ", "), rating)
	}
	return t.Render()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
