package models

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a label or name, strips accents and drops everything
// outside [a-z0-9]. "Comarca Lotação" and "comarca lotacao" collapse to the
// same key.
func Normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if folded, _, err := transform.String(foldTransformer, s); err == nil {
		s = folded
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TruncateUF trims an origin-state code to at most two characters.
func TruncateUF(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	r := []rune(s)
	if len(r) > 2 {
		s = string(r[:2])
	}
	return &s
}

// ParseCount parses children-count cells leniently: "2", "2.0" and float
// values all become 2. Returns ok=false when the text is not numeric.
func ParseCount(s string) (*int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || f < 0 {
		return nil, false
	}
	n := int(f)
	return &n, true
}

// Optional returns nil for blank cells, a pointer otherwise.
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// AsString renders a payload value the way the spreadsheet exports do:
// numbers without a trailing ".0" when integral, blanks for nil.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}
