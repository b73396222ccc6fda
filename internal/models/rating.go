package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/flick/internal/shared"
)

const (
	MinRating = 1
	MaxRating = 5

	NotRated = "Not rated"

	filledStar = "★"
	emptyStar  = "☆"

	// InvalidRatingWarning is shown when a dialog rating cannot be used.
	InvalidRatingWarning = "Rating must be a whole number from 1 to 5. Saving without a rating."
)

// Stars renders r clamped to [1,5] as filled stars padded with empty stars to five glyphs.
func Stars(r int) string {
	r = min(max(r, MinRating), MaxRating)
	return strings.Repeat(filledStar, r) + strings.Repeat(emptyStar, MaxRating-r)
}

// RatingLabel renders the global rating line, e.g. "4.3/5 from 10 ratings (global)".
func RatingLabel(s RatingSummary) string {
	noun := "ratings"
	if s.RatingCount == 1 {
		noun = "rating"
	}
	return fmt.Sprintf("%.1f/%d from %d %s (global)", s.AverageRating, MaxRating, s.RatingCount, noun)
}

// ParseRating parses dialog text into a rating.
//
// Blank text yields (nil, nil). Anything other than a whole number from 1 to 5 is an error.
func ParseRating(text string) (*int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil || n < MinRating || n > MaxRating {
		return nil, fmt.Errorf("%w: rating %q", shared.ErrInvalidInput, text)
	}
	return &n, nil
}

// OptionalText trims text and maps blank to absent.
func OptionalText(text string) *string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &text
}

// ReviewPrompt holds the defaults a rating/review dialog opens with.
type ReviewPrompt struct {
	Title  string
	Rating string
	Review string
}

// PromptFor prefills a dialog from an existing record.
func PromptFor(m MovieRecord) ReviewPrompt {
	p := ReviewPrompt{Title: m.Title, Rating: FormatRating(m.Rating)}
	if m.Review != nil {
		p.Review = *m.Review
	}
	return p
}

// ReviewInput is the raw result of a rating/review dialog.
type ReviewInput struct {
	Rating string
	Review string
}

// Resolve validates the dialog input.
//
// An unusable non-blank rating is dropped and reported through warning; the save still proceeds.
func (in ReviewInput) Resolve() (rating *int, review *string, warning string) {
	rating, err := ParseRating(in.Rating)
	if err != nil {
		warning = InvalidRatingWarning
	}
	return rating, OptionalText(in.Review), warning
}

// ValidationError is a user-facing message for input rejected before any request is made.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Is matches [shared.ErrValidation].
func (e ValidationError) Is(target error) bool { return target == shared.ErrValidation }

// MovieForm is the raw account create form.
type MovieForm struct {
	Title    string
	Status   Status
	Rating   string
	Review   string
	ImageURL string
}

// Validate converts the form into a create body, or returns a [ValidationError].
//
// A watched movie needs a rating. A rating given for a planned movie must still be valid.
func (f MovieForm) Validate() (NewMovie, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return NewMovie{}, ValidationError("Title is required.")
	}

	status := f.Status
	if status == "" {
		status = PlanToWatch
	}
	if status != PlanToWatch && status != HaveWatched {
		return NewMovie{}, ValidationError(fmt.Sprintf("Unknown status %q.", status))
	}

	rating, err := ParseRating(f.Rating)
	if err != nil {
		return NewMovie{}, ValidationError("Rating must be a whole number from 1 to 5.")
	}
	if status == HaveWatched && rating == nil {
		return NewMovie{}, ValidationError("Please choose a rating from 1 to 5 for a watched movie.")
	}

	return NewMovie{
		Title:    title,
		Status:   status,
		Rating:   rating,
		Review:   OptionalText(f.Review),
		ImageURL: OptionalText(f.ImageURL),
	}, nil
}
