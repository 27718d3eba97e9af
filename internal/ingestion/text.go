// Package ingestion turns resume and job description files into cleaned plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Format identifies the encoding of an input document
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

var (
	spaceRun      = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
	bulletMarkers = []string{"• ", "· ", "▪ ", "◦ ", "● "}
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF -> LF) and drop NUL bytes left by some extractors
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\x00", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line, collapses inner whitespace and rewrites unicode
// bullets as markdown bullets.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			trimmed = "- " + strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
			break
		}
	}

	return spaceRun.ReplaceAllString(trimmed, " ")
}

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", "":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", &UnsupportedFormatError{Format: filepath.Ext(path)}
	}
}

// IngestFromFile reads a document, extracts and cleans its text, and
// returns it with metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return "", nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := Extract(format, content)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
	}

	metadata := NewMetadata(text, path)
	metadata.Format = format
	return text, metadata, nil
}

// Extract converts raw document bytes of the given format to cleaned text.
func Extract(format Format, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case FormatText, FormatMarkdown:
		text = string(data)
	case FormatHTML:
		text, err = ExtractHTMLText(string(data))
	case FormatPDF:
		text, err = ExtractPDFText(bytes.NewReader(data), int64(len(data)))
	case FormatDOCX:
		text, err = ExtractDOCXText(bytes.NewReader(data), int64(len(data)))
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// FormatFromContentType maps a MIME type to a document format. Parameters
// such as charset are ignored.
func FormatFromContentType(contentType string) (Format, error) {
	mime := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch mime {
	case "text/plain":
		return FormatText, nil
	case "text/markdown":
		return FormatMarkdown, nil
	case "text/html":
		return FormatHTML, nil
	case "application/pdf":
		return FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX, nil
	default:
		return "", &UnsupportedFormatError{Format: contentType}
	}
}
