// Package sanitization strips markup and query-operator keys from
// client input before it reaches handlers or storage.
package sanitization

import (
	"bytes"
	"encoding/json"
	"errors"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy removes every element; script and style content goes with them.
var strictPolicy = bluemonday.StrictPolicy()

// maxStripPasses bounds nested entity decoding, e.g. &amp;lt;b&amp;gt;
const maxStripPasses = 8

// tagOpen matches a '<' that could still start a tag, comment or directive
var tagOpen = regexp.MustCompile(`<([a-zA-Z/!?])`)

// StripHTML removes all HTML tags from input. Text is returned unescaped, so
// plain characters such as & ' and " are kept as submitted. Entity-encoded
// markup is decoded and stripped again until the value is stable.
func StripHTML(input string) string {
	if !strings.ContainsAny(input, "<&") {
		return input
	}

	out := input
	for i := 0; i < maxStripPasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(out))
		if next == out {
			break
		}
		out = next
	}

	// Whatever is left of a tag opener is dropped
	return tagOpen.ReplaceAllString(out, "$1")
}

// IsOperatorKey reports whether key could be read as a database query
// operator or a path into a nested document
func IsOperatorKey(key string) bool {
	return strings.HasPrefix(key, "$") || strings.Contains(key, ".")
}

// SanitizeValue walks a decoded JSON value, dropping operator keys from
// every object and stripping HTML from every string. Other scalars are
// returned unchanged.
func SanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if IsOperatorKey(k) {
				delete(val, k)
				continue
			}
			val[k] = SanitizeValue(inner)
		}
		return val
	case []interface{}:
		for i, inner := range val {
			val[i] = SanitizeValue(inner)
		}
		return val
	case string:
		return StripHTML(val)
	default:
		return val
	}
}

var errTrailingData = errors.New("trailing data after JSON value")

// SanitizeJSON decodes body, sanitizes it and encodes it again. Numbers keep
// their original text. Bodies that are not a single JSON value return an error
// and should be passed on untouched.
func SanitizeJSON(body []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errTrailingData
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(SanitizeValue(v)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// SanitizeQuery returns a copy of values without operator keys and with HTML
// stripped from every value
func SanitizeQuery(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, vs := range values {
		if IsOperatorKey(k) {
			continue
		}
		clean := make([]string, len(vs))
		for i, v := range vs {
			clean[i] = StripHTML(v)
		}
		out[k] = clean
	}
	return out
}
