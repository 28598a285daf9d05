package magtifun

import (
	"github.com/PuerkitoBio/goquery"
)

const csrfFieldName = "csrf_token"

// ExtractFieldValue returns the value of the first input named `name`, page
// is only used to describe the failure.
func ExtractFieldValue(doc *goquery.Document, page, name string) (string, error) {
	input := doc.Find("input").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("name", "") == name
	}).First()
	if input.Length() == 0 {
		return "", parseErrorf(page, "could not find input %q", name)
	}
	value, ok := input.Attr("value")
	if !ok {
		return "", parseErrorf(page, "input %q has no value", name)
	}
	return value, nil
}
