package tasks

import (
	"fmt"

	"github.com/desertthunder/flick/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchExisting Phase = iota
	AddEntries
)

func (p Phase) String() string {
	switch p {
	case FetchExisting:
		return "fetch_existing"
	case AddEntries:
		return "add_entries"
	default:
		return ""
	}
}

func fetchExistingUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchExisting,
		Step:    0,
		Total:   total,
		Message: "Fetching your list...",
	}
}

func skippedUpdate(step, total int, e models.CatalogEntry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddEntries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] - %s (already on your list)", step, total, e.Title),
		Data:    e,
	}
}

func addedUpdate(step, total int, e models.CatalogEntry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddEntries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, e.Title),
		Data:    e,
	}
}

func addFailedUpdate(step, total int, e models.CatalogEntry, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddEntries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, e.Title, err),
		Data:    e,
	}
}
