package magtifun

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFieldValue(t *testing.T) {
	value, err := ExtractFieldValue(fixtureDocument(t, "login.html"), pageHome, "csrf_token")
	require.NoError(t, err)
	require.Equal(t, "c5f1a0e27b", value)

	value, err = ExtractFieldValue(fixtureDocument(t, "compose.html"), pageCompose, "csrf_token")
	require.NoError(t, err)
	require.Equal(t, "f00dfeed42", value)
}

func TestExtractFieldValueFirstMatch(t *testing.T) {
	doc := markupDocument(t, `
		<input name="csrf_token" value="first">
		<input name="csrf_token" value="second">
	`)
	value, err := ExtractFieldValue(doc, pageHome, "csrf_token")
	require.NoError(t, err)
	require.Equal(t, "first", value)
}

func TestExtractFieldValueMissing(t *testing.T) {
	testCases := []string{
		`<html><body><p>error</p></body></html>`,
		`<input name="other" value="x">`,
		`<input name="csrf_token">`,
	}
	for _, markup := range testCases {
		_, err := ExtractFieldValue(markupDocument(t, markup), pageHome, "csrf_token")
		require.ErrorIs(t, err, ErrParse)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, pageHome, parseErr.Page)
	}
}
