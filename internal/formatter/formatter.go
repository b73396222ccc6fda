// package formatter provides functions to export movie lists to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/shared"
)

// Formats accepted by [Export].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
	FormatJSON     = "json"
)

// MovieList is a user's records prepared for export.
type MovieList struct {
	Username string               `json:"username"`
	Movies   []models.MovieRecord `json:"movies"`
}

// ExportToCSV converts a MovieList to CSV format with columns: ID, Title, Status, Rating, Review, Image URL
func ExportToCSV(list MovieList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Status", "Rating", "Review", "Image URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range list.Movies {
		rating := ""
		if m.Rated() {
			rating = models.FormatRating(m.Rating)
		}
		record := []string{m.ID.String(), m.Title, string(m.Status), rating, m.ReviewText(), m.Poster()}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a MovieList to Markdown, grouped by status
func ExportToMarkdown(list MovieList) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", listTitle(list))
	fmt.Fprintf(&buf, "**Movies**: %d\n\n", len(list.Movies))

	for _, status := range []models.Status{models.PlanToWatch, models.HaveWatched} {
		group := models.FilterMovies(list.Movies, models.StatusFilter(status), "")
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(&buf, "## %s\n\n", status.Label())
		for i, m := range group {
			fmt.Fprintf(&buf, "%d. **%s**", i+1, m.Title)
			if status == models.HaveWatched {
				fmt.Fprintf(&buf, " %s", m.RatingText())
			}
			buf.WriteString("\n")
			if review := m.ReviewText(); review != "" {
				fmt.Fprintf(&buf, "   > %s\n", strings.ReplaceAll(review, "\n", " "))
			}
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a MovieList to plain text format
func ExportToText(list MovieList) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", listTitle(list))
	fmt.Fprintf(&buf, "Movies: %d\n\n", len(list.Movies))

	for i, m := range list.Movies {
		fmt.Fprintf(&buf, "%d. %s [%s] %s\n", i+1, m.Title, m.Status.Label(), m.RatingText())
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a MovieList to indented JSON
func ExportToJSON(list MovieList) ([]byte, error) {
	if list.Movies == nil {
		list.Movies = []models.MovieRecord{}
	}
	return shared.MarshalJSON(list, true)
}

// Export renders list in the named format.
func Export(list MovieList, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ExportToCSV(list)
	case FormatMarkdown, "md":
		return ExportToMarkdown(list)
	case FormatText, "text":
		return ExportToText(list)
	case FormatJSON:
		return ExportToJSON(list)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q (use csv, markdown, txt or json)", shared.ErrInvalidArgument, format)
	}
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return "md"
	case FormatText, "text":
		return "txt"
	default:
		return strings.ToLower(format)
	}
}

// WriteExport renders list and writes it to path.
//
// Defaults to {username}_movies.{ext} as the filename.
func WriteExport(list MovieList, format, path string) (string, error) {
	data, err := Export(list, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		name := list.Username
		if name == "" {
			name = "my"
		}
		path = fmt.Sprintf("%s_movies.%s", name, Extension(format))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

func listTitle(list MovieList) string {
	if list.Username == "" {
		return "My Movies"
	}
	return fmt.Sprintf("%s's Movies", list.Username)
}
