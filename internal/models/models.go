package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/flick/internal/shared"
)

// Status is the watch state of a [MovieRecord].
type Status string

const (
	PlanToWatch Status = "PLAN_TO_WATCH"
	HaveWatched Status = "HAVE_WATCHED"
)

// Label returns a human readable form of the status.
func (s Status) Label() string {
	switch s {
	case PlanToWatch:
		return "Plan to watch"
	case HaveWatched:
		return "Watched"
	default:
		return string(s)
	}
}

// ParseStatus accepts the wire literal or a dashed/lowercase variant ("plan-to-watch", "watched").
func ParseStatus(s string) (Status, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	switch norm {
	case string(PlanToWatch), "PLAN", "PLANNED":
		return PlanToWatch, nil
	case string(HaveWatched), "WATCHED":
		return HaveWatched, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", shared.ErrInvalidArgument, s)
}

// StatusFilter narrows the account list by status.
type StatusFilter string

const (
	FilterAll         StatusFilter = "ALL"
	FilterPlanToWatch StatusFilter = StatusFilter(PlanToWatch)
	FilterHaveWatched StatusFilter = StatusFilter(HaveWatched)
)

// Next cycles ALL → PLAN_TO_WATCH → HAVE_WATCHED → ALL.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case FilterAll:
		return FilterPlanToWatch
	case FilterPlanToWatch:
		return FilterHaveWatched
	default:
		return FilterAll
	}
}

// Label returns the text shown for the filter.
func (f StatusFilter) Label() string {
	if f == FilterAll || f == "" {
		return "All"
	}
	return Status(f).Label()
}

// ParseStatusFilter accepts "all" (or blank) in addition to every [ParseStatus] form.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if t := strings.TrimSpace(s); t == "" || strings.EqualFold(t, string(FilterAll)) {
		return FilterAll, nil
	}
	status, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	return StatusFilter(status), nil
}

// RecordID identifies a movie record. The service may encode it as a JSON string or number.
type RecordID string

func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("record id must be a string or number: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

func (id RecordID) String() string { return string(id) }

// MovieRecord is one entry on the authenticated user's list.
type MovieRecord struct {
	ID       RecordID `json:"id"`
	Title    string   `json:"title"`
	Status   Status   `json:"status"`
	Rating   *int     `json:"rating"`
	Review   *string  `json:"review"`
	ImageURL *string  `json:"imageUrl,omitempty"`
}

// Rated reports whether the record carries a displayable rating.
func (m MovieRecord) Rated() bool {
	return m.Rating != nil && *m.Rating >= MinRating && *m.Rating <= MaxRating
}

// RatingText renders the record rating as stars or "Not rated".
func (m MovieRecord) RatingText() string {
	if !m.Rated() {
		return NotRated
	}
	return Stars(*m.Rating)
}

// ReviewText returns the review or an empty string.
func (m MovieRecord) ReviewText() string {
	if m.Review == nil {
		return ""
	}
	return *m.Review
}

// Poster returns the record's image URL or an empty string.
func (m MovieRecord) Poster() string {
	if m.ImageURL == nil {
		return ""
	}
	return *m.ImageURL
}

// RatingSummary is the server-computed aggregate for a title across all users.
type RatingSummary struct {
	Title         string  `json:"title"`
	AverageRating float64 `json:"averageRating"`
	RoundedRating int     `json:"roundedRating"`
	RatingCount   int     `json:"ratingCount"`
}

// Visible reports whether the summary should produce a badge.
func (r RatingSummary) Visible() bool {
	return r.RatingCount > 0
}

// IndexRatings keys summaries by exact title.
func IndexRatings(summaries []RatingSummary) map[string]RatingSummary {
	idx := make(map[string]RatingSummary, len(summaries))
	for _, s := range summaries {
		idx[s.Title] = s
	}
	return idx
}

// Credentials is the body of both auth calls.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	SessionToken string `json:"sessionToken"`
}

// NewMovie is the create body. Rating and review are always sent, as null when absent.
type NewMovie struct {
	Title    string  `json:"title"`
	Status   Status  `json:"status"`
	Rating   *int    `json:"rating"`
	Review   *string `json:"review"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// MovieUpdate is a partial update body.
//
// A status update serializes only the status. A review update also carries rating and review,
// each as null when cleared. The poster is never part of an update.
type MovieUpdate struct {
	Status Status
	Rating *int
	Review *string

	withReview bool
}

// StatusUpdate builds an update that changes only the status.
func StatusUpdate(s Status) MovieUpdate {
	return MovieUpdate{Status: s}
}

// ReviewUpdate builds an update that marks the record watched with the given rating and review.
func ReviewUpdate(rating *int, review *string) MovieUpdate {
	return MovieUpdate{Status: HaveWatched, Rating: rating, Review: review, withReview: true}
}

// HasReview reports whether rating and review are part of the body.
func (u MovieUpdate) HasReview() bool { return u.withReview }

func (u MovieUpdate) MarshalJSON() ([]byte, error) {
	if !u.withReview {
		return json.Marshal(struct {
			Status Status `json:"status"`
		}{u.Status})
	}
	return json.Marshal(struct {
		Status Status  `json:"status"`
		Rating *int    `json:"rating"`
		Review *string `json:"review"`
	}{u.Status, u.Rating, u.Review})
}

// IntPtr is a convenience for building optional ratings.
func IntPtr(v int) *int { return &v }

// StringPtr is a convenience for building optional text.
func StringPtr(v string) *string { return &v }

// FormatRating renders an optional rating as a bare number, or blank when absent.
func FormatRating(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}
