// Package match normalizes free-text answers across Latin and Cyrillic
// scripts and judges them against a reference-answer grammar supporting
// parenthetical alternatives "(a|b)", bracketed optional fragments "[x]",
// top-level pipe alternatives, and comma-separated multi-part answers.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// latinToCyrillic maps Latin letters to their Cyrillic visual twins.
// These are the letters a user on the wrong keyboard layout produces
// when they mean the Cyrillic character of identical shape.
var latinToCyrillic = map[rune]rune{
	'a': 'а', 'A': 'А',
	'c': 'с', 'C': 'С',
	'e': 'е', 'E': 'Е',
	'o': 'о', 'O': 'О',
	'p': 'р', 'P': 'Р',
	'x': 'х', 'X': 'Х',
	'y': 'у', 'Y': 'У',
}

// accentedLatin is the set of Latin letters whose diacritics are stripped.
// Restricting to this set keeps decomposition away from Cyrillic letters
// like й, whose combining breve must survive.
const accentedLatin = "àáâãäåæçèéêëìíîïñòóôõöøùúûüýÿ"

// stripMarks removes combining marks after canonical decomposition.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripLatinDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(accentedLatin, r) {
			stripped, _, err := transform.String(stripMarks, string(r))
			if err == nil {
				b.WriteString(stripped)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// collapseGerman folds ß and the ae/oe/ue digraphs to base letters.
// Umlauts have already lost their diaeresis in stripLatinDiacritics.
var germanFolder = strings.NewReplacer("ß", "ss", "ae", "a", "oe", "o", "ue", "u")

func hasCyrillic(s string) bool {
	for _, r := range s {
		if (r >= 'а' && r <= 'я') || (r >= 'А' && r <= 'Я') || r == 'ё' || r == 'Ё' {
			return true
		}
	}
	return false
}

func remapLookalikes(s string) string {
	return strings.Map(func(r rune) rune {
		if c, ok := latinToCyrillic[r]; ok {
			return c
		}
		return r
	}, s)
}

func onlyLookalikes(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if _, ok := latinToCyrillic[r]; !ok {
			return false
		}
	}
	return true
}

// Normalize prepares a string for comparison: trim, lowercase, strip all
// whitespace, strip Latin diacritics, fold German spellings, remap Latin
// look-alike letters into Cyrillic when the string is (or strongly looks)
// Cyrillic, and fold ё to е. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	result := germanFolder.Replace(stripLatinDiacritics(b.String()))

	if hasCyrillic(result) {
		result = remapLookalikes(result)
	}

	// Short answers typed entirely in look-alike Latin letters are
	// ambiguous; a strong Russian bigram tips them into Cyrillic.
	if onlyLookalikes(result) && len([]rune(result)) <= 3 {
		if strings.Contains(result, "py") || strings.Contains(result, "op") || strings.Contains(result, "po") {
			result = remapLookalikes(result)
		}
	}

	return strings.ReplaceAll(result, "ё", "е")
}

// splitTopLevelCommas splits on commas outside parens and brackets.
// Unbalanced closers clamp at depth zero rather than erroring.
func splitTopLevelCommas(s string) []string {
	var parts []string
	var current strings.Builder
	depthPar, depthBr := 0, 0

	for _, ch := range s {
		switch ch {
		case '(':
			depthPar++
		case ')':
			if depthPar > 0 {
				depthPar--
			}
		case '[':
			depthBr++
		case ']':
			if depthBr > 0 {
				depthBr--
			}
		case ',':
			if depthPar == 0 && depthBr == 0 {
				parts = append(parts, strings.TrimSpace(current.String()))
				current.Reset()
				continue
			}
		}
		current.WriteRune(ch)
	}
	if t := strings.TrimSpace(current.String()); t != "" {
		parts = append(parts, t)
	}
	return parts
}

// expandGroup turns one comma group into its acceptable raw alternatives:
// strip one enclosing paren layer when the group is a piped "(...)",
// resolve one embedded parenthetical alternative "(a|b)" into one variant
// per choice, resolve one bracketed optional into with/without variants,
// then split remaining pipes as whole-group alternatives.
func expandGroup(group string) []string {
	g := strings.TrimSpace(group)

	if strings.HasPrefix(g, "(") && strings.HasSuffix(g, ")") && strings.Contains(g, "|") {
		g = g[1 : len(g)-1]
	}

	var baseVariants []string
	for _, v := range expandParenAlternative(g) {
		baseVariants = append(baseVariants, expandBracketOptional(v)...)
	}

	var alts []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			alts = append(alts, s)
		}
	}
	for _, b := range baseVariants {
		if strings.Contains(b, "|") {
			for _, p := range strings.Split(b, "|") {
				add(strings.TrimSpace(p))
			}
		} else {
			add(b)
		}
	}
	return alts
}

// expandParenAlternative resolves the first "(x|y)" within s into one
// variant per choice. Parens without a pipe are display text and stay.
func expandParenAlternative(s string) []string {
	open := strings.Index(s, "(")
	if open < 0 {
		return []string{s}
	}
	end := strings.Index(s[open:], ")")
	if end < 0 {
		return []string{s}
	}
	inner := s[open+1 : open+end]
	if !strings.Contains(inner, "|") {
		return []string{s}
	}
	pre, post := s[:open], s[open+end+1:]
	variants := make([]string, 0, 2)
	for _, alt := range strings.Split(inner, "|") {
		variants = append(variants, pre+strings.TrimSpace(alt)+post)
	}
	return variants
}

// expandBracketOptional resolves the first "[x]" within s into the
// with-fragment and without-fragment variants.
func expandBracketOptional(s string) []string {
	open := strings.Index(s, "[")
	if open < 0 {
		return []string{s}
	}
	end := strings.Index(s[open:], "]")
	if end < 0 {
		return []string{s}
	}
	pre, opt, post := s[:open], s[open+1:open+end], s[open+end+1:]
	return []string{pre + opt + post, pre + post}
}

// buildGroups expands and normalizes each top-level comma group of a
// reference answer into its set of acceptable normalized alternatives.
func buildGroups(reference string) []map[string]bool {
	groups := splitTopLevelCommas(reference)
	sets := make([]map[string]bool, len(groups))
	for i, g := range groups {
		set := make(map[string]bool)
		for _, alt := range expandGroup(g) {
			set[Normalize(alt)] = true
		}
		sets[i] = set
	}
	return sets
}

// Check reports whether userAnswer satisfies the reference answer.
// A multi-group reference requires the same number of user tokens and a
// bijection between tokens and groups; token order is irrelevant.
func Check(userAnswer, reference string) bool {
	if Normalize(userAnswer) == "" && Normalize(reference) == "" {
		return true
	}

	groups := buildGroups(reference)

	if len(groups) == 1 {
		return groups[0][Normalize(userAnswer)]
	}

	tokens := splitTopLevelCommas(userAnswer)
	if len(tokens) != len(groups) {
		return false
	}

	used := make([]bool, len(groups))
	for _, raw := range tokens {
		token := Normalize(raw)
		matched := false
		for i, group := range groups {
			if used[i] || !group[token] {
				continue
			}
			used[i] = true
			matched = true
			break
		}
		if !matched {
			return false
		}
	}
	return true
}
