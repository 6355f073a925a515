package main

import (
	"regexp"
	"strings"
	"unicode"
)

// titleization logic

// extracted values in older records are commonly keyed in as all-caps
// or all-lowercase; clients can request display-friendly casing via the
// "titleize" option. words already carrying mixed case are left alone.

type titleizeREs struct {
	wordSeparators  *regexp.Regexp
	upperCaseWords  *regexp.Regexp
	lowerCaseWords  *regexp.Regexp
	ordinalPatterns *regexp.Regexp
	initials        *regexp.Regexp
}

type titleizeContext struct {
	re titleizeREs
}

func newTitleizeContext() *titleizeContext {
	t := titleizeContext{}

	upperCaseWords := []string{
		`XVIII`,
		`IEEE`,
		`ISBN`,
		`ISSN`,
		`NASA`,
		`NATO`,
		`VIII`,
		`XIII`,
		`XVII`,
		`DNA`,
		`III`,
		`USA`,
		`VII`,
		`XII`,
		`XIV`,
		`XIX`,
		`XVI`,
		`II`,
		`IV`,
		`IX`,
		`UK`,
		`VI`,
		`XI`,
		`XV`,
		`XX`,
		`I`,
	}

	lowerCaseWords := []string{
		`an`,
		`and`,
		`as`,
		`at`,
		`but`,
		`by`,
		`de`,
		`for`,
		`from`,
		`in`,
		`into`,
		`nor`,
		`of`,
		`off`,
		`on`,
		`onto`,
		`or`,
		`out`,
		`over`,
		`the`,
		`to`,
		`van`,
		`von`,
		`with`,
	}

	t.re.wordSeparators = regexp.MustCompile(`[ /]+`)
	t.re.upperCaseWords = regexp.MustCompile(`(?i)^(` + strings.Join(upperCaseWords, `|`) + `)([.,:;)]*)$`)
	t.re.lowerCaseWords = regexp.MustCompile(`(?i)^(` + strings.Join(lowerCaseWords, `|`) + `)$`)
	t.re.ordinalPatterns = regexp.MustCompile(`(?i)^[0-9]+(st|nd|rd|th)[.,:;)]*$`)
	t.re.initials = regexp.MustCompile(`^([a-zA-Z]\.)+$`)

	return &t
}

func hasMixedCase(word string) bool {
	hasUpper := false
	hasLower := false

	for _, r := range word {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}

	return hasUpper && hasLower
}

func capitalize(word string) string {
	runes := []rune(word)

	// first letter only; leading punctuation (quotes, parens) is skipped over
	for i, r := range runes {
		if unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			break
		}
	}

	return string(runes)
}

func (t *titleizeContext) titleizeWord(word string, first bool, last bool) string {
	switch {
	case t.re.upperCaseWords.MatchString(word):
		return strings.ToUpper(word)

	case t.re.initials.MatchString(word):
		return strings.ToUpper(word)

	case t.re.ordinalPatterns.MatchString(word):
		return strings.ToLower(word)

	case hasMixedCase(word):
		return word

	case t.re.lowerCaseWords.MatchString(word) && first == false && last == false:
		return strings.ToLower(word)

	default:
		return capitalize(strings.ToLower(word))
	}
}

func (t *titleizeContext) titleize(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}

	// split into words while retaining the separators between them

	seps := t.re.wordSeparators.FindAllStringIndex(s, -1)

	var words []string
	var glue []string

	wordStart := 0
	for _, sep := range seps {
		words = append(words, s[wordStart:sep[0]])
		glue = append(glue, s[sep[0]:sep[1]])
		wordStart = sep[1]
	}
	words = append(words, s[wordStart:])

	var out strings.Builder

	for i, word := range words {
		if word != "" {
			word = t.titleizeWord(word, i == 0, i == len(words)-1)
		}

		out.WriteString(word)

		if i < len(glue) {
			out.WriteString(glue[i])
		}
	}

	return out.String()
}
