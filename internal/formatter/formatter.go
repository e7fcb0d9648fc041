// package formatter exports album collections to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/crate/internal/models"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat accepts a format name or its common file extension.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// Export renders albums in format f.
func Export(f Format, title string, albums []models.Album) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(albums)
	case FormatMarkdown:
		return ExportToMarkdown(title, albums)
	case FormatText:
		return ExportToText(title, albums)
	default:
		return nil, fmt.Errorf("unsupported export format: %q", f)
	}
}

// ExportToCSV converts albums to CSV with columns: ID, Title, Artist, Year, Cover
func ExportToCSV(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Title", "Artist", "Year", "Cover"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, album := range albums {
		record := []string{
			strconv.Itoa(album.ID),
			album.Title,
			album.Artist,
			strconv.Itoa(album.Year),
			album.Cover,
		}
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

// ExportToMarkdown renders albums as a Markdown table with cover thumbnails
func ExportToMarkdown(title string, albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Albums**: %d\n\n", len(albums))

	if len(albums) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Cover | Title | Artist | Year |\n")
	buf.WriteString("|---|-------|-------|--------|------|\n")
	for _, album := range albums {
		cover := ""
		if album.Cover != "" {
			cover = fmt.Sprintf("![%s](%s)", escapeCell(album.Title), album.Cover)
		}
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %d |\n",
			album.ID, cover, escapeCell(album.Title), escapeCell(album.Artist), album.Year)
	}

	return buf.Bytes(), nil
}

// ExportToText converts albums to a numbered plain-text listing
func ExportToText(title string, albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Collection: %s\n", title)
	fmt.Fprintf(&buf, "Albums: %d\n\n", len(albums))

	for i, album := range albums {
		fmt.Fprintf(&buf, "%d. %s - %s (%d)\n", i+1, album.Artist, album.Title, album.Year)
	}

	return buf.Bytes(), nil
}

// escapeCell keeps pipes inside a value from splitting a Markdown table cell.
func escapeCell(s string) string {
	return string(bytes.ReplaceAll([]byte(s), []byte("|"), []byte(`\|`)))
}

// DefaultFilename returns "<base>.<ext>" for format f.
func DefaultFilename(base string, f Format) string {
	switch f {
	case FormatCSV:
		return base + ".csv"
	case FormatMarkdown:
		return base + ".md"
	default:
		return base + ".txt"
	}
}

// WriteExport renders albums in format f and writes them to path, creating parent directories.
//
// An empty path defaults to [DefaultFilename] of title.
func WriteExport(f Format, title string, albums []models.Album, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(title, f)
	}

	data, err := Export(f, title, albums)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}

	return path, nil
}

// WriteCSVExport writes albums as CSV to path.
func WriteCSVExport(title string, albums []models.Album, path string) (string, error) {
	return WriteExport(FormatCSV, title, albums, path)
}

// WriteMarkdownExport writes albums as Markdown to path.
func WriteMarkdownExport(title string, albums []models.Album, path string) (string, error) {
	return WriteExport(FormatMarkdown, title, albums, path)
}

// WriteTextExport writes albums as plain text to path.
func WriteTextExport(title string, albums []models.Album, path string) (string, error) {
	return WriteExport(FormatText, title, albums, path)
}
