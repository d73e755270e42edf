package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

// ErrUnknownFormat is returned for an export format other than text or html.
var ErrUnknownFormat = errors.New("unknown report format")

// Format is an export format.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatHTML:
		return f, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".txt"
}

// Write renders the document in the given format.
func Write(w io.Writer, f Format, doc models.ReportDocument, pages []Page) error {
	switch f {
	case FormatHTML:
		return WriteHTML(w, doc, pages)
	case FormatText:
		return WriteText(w, doc, pages)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// FileName returns the default export file name for a document.
func FileName(doc models.ReportDocument, f Format) string {
	unit := strings.ToLower(strings.ReplaceAll(doc.UnitLabel, " ", "-"))
	if unit == "" {
		unit = "all-units"
	}
	return fmt.Sprintf("handwash-%s-%s-%s%s", doc.Kind.ID, unit, doc.GeneratedAt.Format("20060102-150405"), f.Extension())
}
