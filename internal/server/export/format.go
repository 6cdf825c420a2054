// Package export renders a filtered report into downloadable documents:
// an xlsx spreadsheet and a paginated PDF.
package export

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/worklog/internal/common"
)

// Format is an export file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "xlsx" or "pdf" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q", common.ErrValidation, s)
}

// ContentType is the MIME type the file is served with.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension is the file extension without a dot.
func (f Format) Extension() string {
	return string(f)
}

// File is a rendered export ready to be sent.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Render encodes in as format.
func Render(format Format, in DocumentInput) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return Spreadsheet(in.Rows)
	case FormatPDF:
		return Document(in)
	}
	return nil, fmt.Errorf("%w: unsupported export format %q", common.ErrValidation, format)
}
