package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/shared"
)

// Prompter collects interactive input for commands run without the corresponding flags.
type Prompter interface {
	Credentials(title string, username, password *string) error
	Review(p models.ReviewPrompt) (models.ReviewInput, error)
	Movie() (models.MovieForm, error)
	Confirm(title string) (bool, error)
}

// huhPrompter prompts on the terminal with standalone huh forms.
type huhPrompter struct{}

func (huhPrompter) Credentials(title string, username, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(username),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password),
		).Title(title),
	).WithTheme(huh.ThemeCharm())
	return runForm(form)
}

func (huhPrompter) Review(p models.ReviewPrompt) (models.ReviewInput, error) {
	input := models.ReviewInput{Rating: p.Rating, Review: p.Review}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Rating").
				Description(fmt.Sprintf("Whole number from %d to %d, blank for none", models.MinRating, models.MaxRating)).
				Value(&input.Rating),
			huh.NewText().Title("Review").Value(&input.Review),
		).Title(p.Title),
	).WithTheme(huh.ThemeCharm())
	return input, runForm(form)
}

func (huhPrompter) Movie() (models.MovieForm, error) {
	mf := models.MovieForm{Status: models.PlanToWatch}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&mf.Title),
			huh.NewSelect[models.Status]().
				Title("Status").
				Options(
					huh.NewOption(models.PlanToWatch.Label(), models.PlanToWatch),
					huh.NewOption(models.HaveWatched.Label(), models.HaveWatched),
				).
				Value(&mf.Status),
			huh.NewInput().Title("Rating").Description("Required when watched").Value(&mf.Rating),
			huh.NewText().Title("Review").Value(&mf.Review),
			huh.NewInput().Title("Poster URL").Value(&mf.ImageURL),
		).Title("New movie"),
	).WithTheme(huh.ThemeCharm())
	return mf, runForm(form)
}

func (huhPrompter) Confirm(title string) (bool, error) {
	var ok bool
	err := runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok),
		),
	).WithTheme(huh.ThemeCharm()))
	return ok, err
}

func runForm(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return shared.ErrCancelled
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}
