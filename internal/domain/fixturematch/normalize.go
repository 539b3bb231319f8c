package fixturematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a raw team name into an identity key and its tokens.
// Blank input yields an empty CanonicalName. Normalizing a returned key with
// the same competition code returns it again, except when single-letter tokens
// join into a token-alias source: "S T" gives "st", and "st" gives "saint".
func (t *AliasTables) Normalize(name, competitionCode string) CanonicalName {
	if strings.TrimSpace(name) == "" {
		return CanonicalName{}
	}

	cleaned := cleanName(name)
	if cleaned == "" {
		// Only punctuation, e.g. "---". There is no identity to build.
		return CanonicalName{}
	}

	rawTokens := strings.Fields(cleaned)
	tokens := make([]string, 0, len(rawTokens))
	for _, token := range rawTokens {
		if to, ok := t.TokenAlias(token); ok {
			token = to
		}
		if t.IsStopword(token) {
			continue
		}
		tokens = append(tokens, token)
	}

	key := strings.Join(tokens, "")
	if key == "" {
		key = strings.Join(rawTokens, "")
	}

	return CanonicalName{
		Key:    t.ResolveKey(key, competitionCode),
		Tokens: tokens,
	}
}

// NormalizeName normalizes with the bundled alias tables.
func NormalizeName(name, competitionCode string) CanonicalName {
	return DefaultAliasTables().Normalize(name, competitionCode)
}

// cleanName folds diacritics and case and collapses every run of
// non-alphanumeric characters into one space.
func cleanName(name string) string {
	folded := stripDiacritics(strings.ToLower(name))
	folded = strings.ReplaceAll(folded, "&", "and")

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

func stripDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
