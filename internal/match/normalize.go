package match

import (
	"strings"
	"unicode"
)

// getterPrefixes are dropped so "GetCity" and "City" compare equal.
var getterPrefixes = []string{"get", "is"}

// Normalize folds a property name for fuzzy comparison: camel case
// tokens are joined lower case, separators are dropped and a leading
// getter token is removed when something remains after it.
func Normalize(s string) string {
	tokens := Tokenize(s)

	if len(tokens) > 1 {
		for _, p := range getterPrefixes {
			if tokens[0] == p {
				tokens = tokens[1:]
				break
			}
		}
	}

	return strings.Join(tokens, "")
}

// Tokenize splits a camel case or separated identifier into lower case
// tokens: "customerHTTPAddr" gives [customer http addr].
func Tokenize(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports a lower to upper transition, or the last upper
// case rune of an acronym followed by lower case ("XMLParser").
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
