package match

import (
	"strings"
	"unicode"
)

// Normalize folds a property name for tolerant matching: "Order ID",
// "order_id", "orderId" and "OrderID" all become "orderid".
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Tokens splits a property name into lower case words on separators and
// camel case boundaries. "XMLParser" yields [xml parser].
func Tokens(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && boundary(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

// isSeparator reports whether r separates words of a display name.
func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', '/':
		return true
	}

	return unicode.IsSpace(r)
}

// boundary reports whether a camel case word starts at runes[i].
func boundary(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	// end of an acronym: "XMLParser" splits before 'P'
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
