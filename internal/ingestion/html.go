package ingestion

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jobPostingSelectors locate the main content of common job boards,
// most specific first
var jobPostingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

const noiseSelector = "nav, footer, header, script, style, noscript, form, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// blockElements get a line break after their text so paragraphs and list
// items do not run together
const blockElements = "p, li, h1, h2, h3, h4, h5, h6, div, br, tr"

// ExtractHTMLText returns the main text of an HTML page, preferring known
// job posting containers and falling back to the body.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &ExtractionError{Format: FormatHTML, Cause: err}
	}

	doc.Find(noiseSelector).Remove()

	var main *goquery.Selection
	for _, selector := range jobPostingSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	main.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	main.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})

	return main.Text(), nil
}
