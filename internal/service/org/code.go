package org

import (
	"strings"
	"unicode"
)

// codeStopwords are particles skipped when deriving a unit code from a
// name, so "Direction des Ressources Humaines" codes as DRH.
var codeStopwords = map[string]struct{}{
	"de": {}, "des": {}, "du": {}, "la": {}, "le": {}, "les": {}, "l": {},
	"et": {}, "d": {}, "of": {}, "the": {}, "and": {},
}

// initialsOf derives an uppercase prefix from the significant words of a
// unit name, at most four letters. Names without usable letters fall back
// to "U".
func initialsOf(name string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		if _, skip := codeStopwords[strings.ToLower(word)]; skip {
			continue
		}
		runes := []rune(word)
		b.WriteRune(unicode.ToUpper(runes[0]))
		if b.Len() >= 4 {
			break
		}
	}
	if b.Len() == 0 {
		return "U"
	}
	return b.String()
}
