// Package cvparse pulls contact details out of an uploaded CV so the intake
// form can be prefilled. Extraction is best effort: a field the parser cannot
// find is simply left empty, and a file it cannot read at all is an error the
// caller surfaces without touching any state.
package cvparse

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// ParsedCV holds the fields the intake form can be prefilled with.
type ParsedCV struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Major       string `json:"major"`
	DateOfBirth string `json:"dateOfBirth"`
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?84|0)[0-9][0-9 .\-]{7,12}[0-9]`)
	isoDate      = regexp.MustCompile(`(19|20)[0-9]{2}-[0-9]{2}-[0-9]{2}`)
	dmyDate      = regexp.MustCompile(`([0-3]?[0-9])[/.]([01]?[0-9])[/.]((19|20)[0-9]{2})`)
	majorLine    = regexp.MustCompile(`(?i)^(?:major|field of study|chuyên ngành)\s*[:\-]\s*(.+)$`)
)

// Parse extracts text from the file and pulls candidate fields out of it.
func Parse(r io.Reader, filename string) (*ParsedCV, error) {
	text, err := ExtractText(r, filename)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text could be extracted from %s", filename)
	}
	return parseText(text), nil
}

// ExtractText reads the whole file and returns its text content. PDF files
// go through unipdf; plain text is returned as is; anything else is treated
// as text and truncated.
func ExtractText(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	ext := strings.ToLower(filename[strings.LastIndex(filename, ".")+1:])
	switch ext {
	case "pdf":
		return extractPDF(data)
	case "txt":
		return string(data), nil
	default:
		if len(data) > 10000 {
			data = data[:10000]
		}
		return string(data), nil
	}
}

func extractPDF(data []byte) (string, error) {
	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("get page count: %w", err)
	}
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	var b strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue // skip unreadable pages
		}
		ex, err := extractor.New(page)
		if err != nil {
			continue
		}
		pageText, err := ex.ExtractText()
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func parseText(text string) *ParsedCV {
	cv := &ParsedCV{}

	cv.Email = emailPattern.FindString(text)
	cv.Phone = strings.TrimSpace(phonePattern.FindString(text))
	cv.DateOfBirth = findDate(text)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if cv.Name == "" && !strings.ContainsAny(line, "@0123456789") {
			// first line without digits or an email is usually the name
			cv.Name = line
		}
		if m := majorLine.FindStringSubmatch(line); m != nil && cv.Major == "" {
			cv.Major = strings.TrimSpace(m[1])
		}
	}
	return cv
}

// findDate normalizes the first recognizable date to YYYY-MM-DD.
func findDate(text string) string {
	if d := isoDate.FindString(text); d != "" {
		return d
	}
	if m := dmyDate.FindStringSubmatch(text); m != nil {
		t, err := time.Parse("2-1-2006", fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3]))
		if err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
