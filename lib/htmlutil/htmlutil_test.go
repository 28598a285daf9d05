package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t testing.TB, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		text     string
		expected string
	}{
		{text: "  თბილისი \n", expected: "თბილისი"},
		{text: "12\n\t March   2021", expected: "12 March 2021"},
		{text: "", expected: ""},
		{text: "plain", expected: "plain"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeText(test.text))
	}
}

func TestStripSpace(t *testing.T) {
	require.Equal(t, "05Mar202114:22:10", StripSpace(" 05 Mar\n2021 14:22:10 "))
}

func TestSelectedOption(t *testing.T) {
	doc := parse(t, `
		<select id="month">
			<option value="">-</option>
			<option value="3" selected> მარტი </option>
		</select>
		<select id="empty"><option value="">-</option></select>
	`)

	text, ok := SelectedOption(doc.Find("select#month"))
	require.True(t, ok)
	require.Equal(t, "მარტი", text)

	_, ok = SelectedOption(doc.Find("select#empty"))
	require.False(t, ok)

	_, ok = SelectedOption(doc.Find("select#missing"))
	require.False(t, ok)
}

func TestExactClass(t *testing.T) {
	doc := parse(t, `
		<form name="user_action">
			<span class="xxlarge dark english">50</span>
			<span class="dark english">5</span>
		</form>
	`)

	require.Equal(t, "5", Text(ExactClass(doc.Selection, "span", "dark english")))
	require.Equal(t, "50", Text(ExactClass(doc.Selection, "span", "xxlarge dark english")))
	require.Equal(t, 0, ExactClass(doc.Selection, "span", "english").Length())
}

func TestFirstById(t *testing.T) {
	doc := parse(t, `<input id="f_name" value="John"><input id="f_name" value="Other">`)
	require.Equal(t, "John", FirstById(doc, "input", "f_name").AttrOr("value", ""))
	require.Equal(t, 0, FirstById(doc, "input", "l_name").Length())
}
