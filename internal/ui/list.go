package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/tasks"
)

var (
	_ list.Item = cardItem{}
	_ list.Item = movieItem{}
)

// cardItem wraps [tasks.Card] to implement [list.Item].
type cardItem struct {
	card tasks.Card
	busy bool
}

func (i cardItem) FilterValue() string { return i.card.Entry.Title }
func (i cardItem) Title() string {
	title := fmt.Sprintf("%s (%d)", i.card.Entry.Title, i.card.Entry.Year)
	if stars := i.card.Stars(); stars != "" {
		title = fmt.Sprintf("%s %s", title, styles.stars.Render(stars))
	}
	return title
}
func (i cardItem) Description() string {
	if i.busy {
		return "Adding…"
	}
	desc := strings.Join(i.card.Entry.Genres, ", ")
	if label := i.card.Label(); label != "" {
		desc = fmt.Sprintf("%s • %s", desc, label)
	}
	return desc
}

// movieItem wraps [models.MovieRecord] to implement [list.Item].
type movieItem struct {
	movie models.MovieRecord
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.movie.Status.Label(), i.movie.RatingText())
	if review := i.movie.ReviewText(); review != "" {
		desc = fmt.Sprintf("%s • %q", desc, review)
	}
	return desc
}

func cardItems(cards []tasks.Card, busy func(int) bool) []list.Item {
	items := make([]list.Item, len(cards))
	for i, c := range cards {
		items[i] = cardItem{card: c, busy: busy(c.Entry.ID)}
	}
	return items
}

func movieItems(movies []models.MovieRecord) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m}
	}
	return items
}
