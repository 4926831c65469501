package sanitization

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"a@x.com", "a@x.com"},
		{"How much?", "How much?"},
		{"<b>Ann</b>", "Ann"},
		{"<script>alert(1)</script>Hello", "Hello"},
		{`<img src=x onerror="alert(1)">`, ""},
		{"<style>body{}</style>ok", "ok"},
		{"<a href='javascript:void(0)'>link</a>", "link"},
		{"AT&T", "AT&T"},
		{"O'Brien", "O'Brien"},
		{`He said "hi"`, `He said "hi"`},
		{"1 < 2 & 3 > 2", "1 < 2 & 3 > 2"},
		{"<b>x</b>", "x"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;ok", "ok"},
		{"&amp;lt;b&amp;gt;bold", "bold"},
		{"AT&amp;T", "AT&T"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestIsOperatorKey(t *testing.T) {
	assert.True(t, IsOperatorKey("$gt"))
	assert.True(t, IsOperatorKey("$where"))
	assert.True(t, IsOperatorKey("profile.name"))
	assert.False(t, IsOperatorKey("Name"))
	assert.False(t, IsOperatorKey("price$"))
}

func TestSanitizeJSON(t *testing.T) {
	in := `{
		"Name": "<b>Ann</b>",
		"Email": {"$gt": ""},
		"$where": "sleep(1000)",
		"a.b": 1,
		"Tags": ["<i>x</i>", {"$ne": 1, "ok": "<script>bad()</script>yes"}],
		"Count": 12345678901234567890,
		"Flag": true,
		"Nothing": null
	}`

	out, err := SanitizeJSON([]byte(in))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &got))

	assert.Equal(t, "Ann", got["Name"])
	assert.Equal(t, map[string]interface{}{}, got["Email"])
	assert.NotContains(t, got, "$where")
	assert.NotContains(t, got, "a.b")
	assert.Equal(t, []interface{}{"x", map[string]interface{}{"ok": "yes"}}, got["Tags"])
	assert.Contains(t, string(out), "12345678901234567890", "numbers keep their text")
	assert.Equal(t, true, got["Flag"])
	assert.Contains(t, got, "Nothing")
}

func TestSanitizeJSONRejectsNonJSON(t *testing.T) {
	for _, body := range []string{"name=Ann", `{"a":1}{"b":2}`, `{"a":`} {
		_, err := SanitizeJSON([]byte(body))
		assert.Error(t, err, body)
	}
}

func TestSanitizeQuery(t *testing.T) {
	in := url.Values{
		"q":         {"<b>hi</b>", "plain"},
		"$gt":       {"1"},
		"user.name": {"x"},
	}

	out := SanitizeQuery(in)
	assert.Equal(t, url.Values{"q": {"hi", "plain"}}, out)
	assert.Equal(t, "<b>hi</b>", in.Get("q"), "input is not modified")
}

func TestSanitizeJSONKeepsPunctuation(t *testing.T) {
	out, err := SanitizeJSON([]byte(`{"CompanyName":"AT&T","Name":"O'Brien","Query":"He said \"hi\" <b>x</b>"}`))
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, map[string]string{
		"CompanyName": "AT&T",
		"Name":        "O'Brien",
		"Query":       `He said "hi" x`,
	}, got)
	assert.Contains(t, string(out), `"AT&T"`)
}
