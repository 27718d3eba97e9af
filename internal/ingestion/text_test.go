package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	result := CleanText("# Title\n## Subtitle\nContent here")

	assert.Equal(t, "# Title\n## Subtitle\nContent here", result)
}

func TestCleanText_Bullets(t *testing.T) {
	input := "- Item 1\n• Item 2\n  ·   Item 3\n* Item 4"
	result := CleanText(input)

	assert.Equal(t, "- Item 1\n- Item 2\n- Item 3\n* Item 4", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Line \t   with    multiple    spaces   ")

	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")

	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")

	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_EmptyAndWhitespace(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
	assert.Empty(t, CleanText("\x00\x00"))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	result := CleanText("Test with émojis 🚀 and spéciàl chàracters")

	assert.Contains(t, result, "émojis")
	assert.Contains(t, result, "🚀")
	assert.Contains(t, result, "spéciàl chàracters")
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"resume.txt", FormatText, false},
		{"resume", FormatText, false},
		{"README.MD", FormatMarkdown, false},
		{"posting.html", FormatHTML, false},
		{"posting.htm", FormatHTML, false},
		{"resume.PDF", FormatPDF, false},
		{"resume.docx", FormatDOCX, false},
		{"resume.doc", "", true},
		{"photo.png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				var unsupported *UnsupportedFormatError
				assert.True(t, errors.As(err, &unsupported))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        Format
		wantErr     bool
	}{
		{"text/plain", FormatText, false},
		{"text/plain; charset=utf-8", FormatText, false},
		{"TEXT/HTML", FormatHTML, false},
		{"text/markdown", FormatMarkdown, false},
		{"application/pdf", FormatPDF, false},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", FormatDOCX, false},
		{"image/png", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			got, err := FormatFromContentType(tt.contentType)
			if tt.wantErr {
				var unsupported *UnsupportedFormatError
				assert.True(t, errors.As(err, &unsupported))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIngestFromFile_Text(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "resume.md")
	require.NoError(t, os.WriteFile(testFile, []byte("# Jane Doe\n\n\n\nPython   developer"), 0644))

	text, metadata, err := IngestFromFile(testFile)
	require.NoError(t, err)
	require.NotNil(t, metadata)

	assert.Equal(t, "# Jane Doe\n\nPython developer", text)
	assert.Equal(t, FormatMarkdown, metadata.Format)
	assert.Equal(t, testFile, metadata.Source)
	assert.Equal(t, ContentHash(text), metadata.Hash)
	assert.Equal(t, 5, metadata.Words)
}

func TestIngestFromFile_HTML(t *testing.T) {
	html := `<html><body><nav>Home | Jobs</nav>
<div class="job-description"><h2>Backend Engineer</h2><ul><li>Go</li><li>PostgreSQL</li></ul></div>
<footer>Copyright</footer></body></html>`
	testFile := filepath.Join(t.TempDir(), "posting.html")
	require.NoError(t, os.WriteFile(testFile, []byte(html), 0644))

	text, metadata, err := IngestFromFile(testFile)
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, metadata.Format)
	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "- Go")
	assert.Contains(t, text, "- PostgreSQL")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Copyright")
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	_, _, err := IngestFromFile("/nonexistent/resume.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromFile_Unsupported(t *testing.T) {
	_, _, err := IngestFromFile("resume.odt")
	var unsupported *UnsupportedFormatError
	assert.True(t, errors.As(err, &unsupported))
}

func TestExtract_UnknownFormat(t *testing.T) {
	_, err := Extract(Format("rtf"), []byte("x"))
	var unsupported *UnsupportedFormatError
	assert.True(t, errors.As(err, &unsupported))
}

func TestExtractHTMLText_FallbackToBody(t *testing.T) {
	text, err := ExtractHTMLText(`<html><body><script>var x = 1;</script><p>Senior Go engineer</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Senior Go engineer", CleanText(text))
}

func TestExtractPDFText_Invalid(t *testing.T) {
	data := []byte("not a pdf")
	_, err := ExtractPDFText(bytes.NewReader(data), int64(len(data)))

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, FormatPDF, extractionErr.Format)
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:document><w:body><w:p><w:r><w:t>Skills:</w:t></w:r><w:tab/><w:r><w:t>Go &amp; Rust</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>5 years of experience</w:t></w:r></w:p></w:body></w:document>`

	assert.Equal(t, "Skills: Go & Rust\n5 years of experience", CleanText(docxXMLToText(xml)))
}

func TestExtractDOCXText(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Python developer</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := Extract(FormatDOCX, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Python developer")
}

func TestExtractDOCXText_Invalid(t *testing.T) {
	data := []byte("not a zip")
	_, err := ExtractDOCXText(bytes.NewReader(data), int64(len(data)))

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, FormatDOCX, extractionErr.Format)
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
