// Package htmlutil holds the handful of lookups the scrapers need on top of
// goquery selections.
package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// NormalizeText trims the text and collapses runs of whitespace into a
// single space.
func NormalizeText(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// StripSpace removes every whitespace character from s.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Text returns the normalized text of the first node in sel.
func Text(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return NormalizeText(GetText(sel.Nodes[0]))
}

// SelectedOption returns the normalized text of the selected option of the
// first <select> in sel. ok is false when no option is marked selected.
func SelectedOption(sel *goquery.Selection) (text string, ok bool) {
	option := sel.First().Find("option[selected]").First()
	if option.Length() == 0 {
		return "", false
	}
	return Text(option), true
}

// FirstById finds the first element with the given tag and id, it returns an
// empty selection if there is none.
func FirstById(doc *goquery.Document, tag, id string) *goquery.Selection {
	return doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == id
	}).First()
}

// ExactClass finds elements under sel whose class attribute is exactly
// `class`, unlike a `.a.b` selector this does not match elements that carry
// additional classes.
func ExactClass(sel *goquery.Selection, tag, class string) *goquery.Selection {
	return sel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return NormalizeText(s.AttrOr("class", "")) == class
	})
}
