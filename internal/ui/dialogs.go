package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/desertthunder/flick/internal/models"
)

// dialogKind identifies which modal is open.
type dialogKind int

const (
	reviewDialog dialogKind = iota
	createDialog
	deleteDialog
)

// dialogResult is what a modal resolves with. Cancelled dialogs carry no values.
type dialogResult struct {
	kind      dialogKind
	target    string
	cancelled bool
	review    models.ReviewInput
	movie     models.MovieForm
	confirmed bool
}

// dialog wraps a [huh.Form] as a modal sub-model.
type dialog struct {
	kind   dialogKind
	target string
	form   *huh.Form

	rating    string
	review    string
	movie     models.MovieForm
	confirmed bool
}

var statusOptions = []huh.Option[models.Status]{
	huh.NewOption(models.PlanToWatch.Label(), models.PlanToWatch),
	huh.NewOption(models.HaveWatched.Label(), models.HaveWatched),
}

// newReviewDialog opens the rating/review dialog prefilled from prompt.
func newReviewDialog(target string, prompt models.ReviewPrompt) *dialog {
	d := &dialog{kind: reviewDialog, target: target, rating: prompt.Rating, review: prompt.Review}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Rating").
				Description(fmt.Sprintf("Whole number from %d to %d, blank for none", models.MinRating, models.MaxRating)).
				Value(&d.rating),
			huh.NewText().
				Title("Review").
				Value(&d.review),
		).Title(prompt.Title).
			Description("Mark as watched"),
	).WithTheme(dialogTheme()).WithShowHelp(false)
	return d
}

// newCreateDialog opens the new-movie form.
func newCreateDialog() *dialog {
	d := &dialog{kind: createDialog, movie: models.MovieForm{Status: models.PlanToWatch}}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&d.movie.Title),
			huh.NewSelect[models.Status]().
				Title("Status").
				Options(statusOptions...).
				Value(&d.movie.Status),
			huh.NewInput().
				Title("Rating").
				Description("Required when watched").
				Value(&d.movie.Rating),
			huh.NewText().
				Title("Review").
				Value(&d.movie.Review),
			huh.NewInput().
				Title("Poster URL").
				Value(&d.movie.ImageURL),
		).Title("New movie"),
	).WithTheme(dialogTheme()).WithShowHelp(false)
	return d
}

// newDeleteDialog asks for confirmation before deleting the record.
func newDeleteDialog(target, title string) *dialog {
	d := &dialog{kind: deleteDialog, target: target}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", title)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&d.confirmed),
		),
	).WithTheme(dialogTheme()).WithShowHelp(false)
	return d
}

func (d *dialog) Init() tea.Cmd {
	return d.form.Init()
}

// Update forwards msg to the form. Esc cancels; completion resolves the dialog with its values.
func (d *dialog) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return d.resolve(true)
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	switch d.form.State {
	case huh.StateCompleted:
		return d.resolve(false)
	case huh.StateAborted:
		return d.resolve(true)
	}
	return cmd
}

func (d *dialog) View() string {
	return d.form.View()
}

func (d *dialog) result(cancelled bool) dialogResult {
	res := dialogResult{kind: d.kind, target: d.target, cancelled: cancelled}
	if cancelled {
		return res
	}

	switch d.kind {
	case reviewDialog:
		res.review = models.ReviewInput{Rating: d.rating, Review: d.review}
	case createDialog:
		res.movie = d.movie
	case deleteDialog:
		res.confirmed = d.confirmed
	}
	return res
}

func (d *dialog) resolve(cancelled bool) tea.Cmd {
	res := d.result(cancelled)
	return func() tea.Msg { return dialogDoneMsg(res) }
}
