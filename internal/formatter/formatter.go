// package formatter renders catalog snapshots to various formats (plain text, Markdown, JSON, CSV)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/shared"
)

// Format names accepted by [Render].
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatCSV      = "csv"
)

// Formats lists the accepted format names.
var Formats = []string{FormatText, FormatMarkdown, FormatJSON, FormatCSV}

// Placeholder is shown in place of the items of a section that is not Loaded.
func Placeholder(s models.Section) string {
	switch s.Status {
	case models.NotRequested:
		return "(not requested)"
	case models.Loading:
		return "(loading…)"
	case models.Failed:
		if d := s.Diagnostic(); d != "" {
			return fmt.Sprintf("(unavailable: %s)", d)
		}
		return "(unavailable)"
	default:
		return "(nothing here)"
	}
}

// Render converts snap to the named format.
func Render(format string, snap models.Snapshot) ([]byte, error) {
	switch format {
	case FormatText, "":
		return ExportToText(snap)
	case FormatMarkdown, "md":
		return ExportToMarkdown(snap)
	case FormatJSON:
		return ExportToJSON(snap)
	case FormatCSV:
		return ExportToCSV(snap)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// ExportToText converts a Snapshot to plain text: one heading per exposed section, then one line per renderable item.
func ExportToText(snap models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	for i, s := range snap.Sections() {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(heading(s) + "\n")

		items := models.Renderable(s.Items)
		if s.Status != models.Loaded || len(items) == 0 {
			buf.WriteString("  " + Placeholder(s) + "\n")
			continue
		}
		for j, item := range items {
			buf.WriteString(fmt.Sprintf("  %d. %s\n", j+1, item.Name))
		}
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Snapshot to Markdown with one image per item, read from the section's image key.
func ExportToMarkdown(snap models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Discover\n")
	for _, s := range snap.Sections() {
		buf.WriteString(fmt.Sprintf("\n## %s\n\n", heading(s)))

		items := models.Renderable(s.Items)
		if s.Status != models.Loaded || len(items) == 0 {
			buf.WriteString(fmt.Sprintf("_%s_\n", Placeholder(s)))
			continue
		}
		for i, item := range items {
			buf.WriteString(fmt.Sprintf("- ![%s](%s) %s <!-- %s -->\n", item.Name, item.CoverURL(), item.Name, models.ItemKey(item, i)))
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a Snapshot to indented JSON. Every item is kept, including those without images.
func ExportToJSON(snap models.Snapshot) ([]byte, error) {
	out := struct {
		models.Snapshot
		Errors map[string]string `json:"errors,omitempty"`
	}{Snapshot: snap}

	for _, s := range snap.Sections() {
		if d := s.Diagnostic(); d != "" {
			if out.Errors == nil {
				out.Errors = make(map[string]string)
			}
			out.Errors[s.Kind.String()] = d
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToCSV converts the Loaded sections of a Snapshot to CSV with columns: Section, Position, Key, Name, ImageKey, ImageURL
func ExportToCSV(snap models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Section", "Position", "Key", "Name", "ImageKey", "ImageURL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range snap.Sections() {
		if s.Status != models.Loaded {
			continue
		}
		for i, item := range s.Items {
			record := []string{
				s.Kind.String(),
				strconv.Itoa(i + 1),
				models.ItemKey(item, i),
				item.Name,
				string(s.Kind.ImageKey()),
				item.CoverURL(),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteExport renders snap in format and writes it to path.
//
// Defaults to discover.{ext} in the working directory.
func WriteExport(snap models.Snapshot, format, path string) (string, error) {
	if path == "" {
		path = "discover." + Extension(format)
	}

	data, err := Render(format, snap)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// Extension returns the file extension for format.
func Extension(format string) string {
	switch format {
	case FormatMarkdown, "md":
		return "md"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "txt"
	}
}

func heading(s models.Section) string {
	if s.Kind == models.SearchResults && s.QueryKey != "" {
		return fmt.Sprintf("%s: %q", s.Kind.Title(), s.QueryKey)
	}
	return s.Kind.Title()
}
