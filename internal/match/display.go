package match

import (
	"regexp"
	"strings"
)

// pipeSentinel temporarily hides pipes inside bracketed optional fragments
// so they are not mistaken for top-level alternatives.
const pipeSentinel = "\x00PIPE\x00"

var (
	parenGroupRe    = regexp.MustCompile(`\(([^)]+)\)`)
	emptyParenRe    = regexp.MustCompile(`\(\s*\)`)
	bracketRe       = regexp.MustCompile(`\[[^\]]*\]`)
	commaSpacingRe  = regexp.MustCompile(`\s*,\s*`)
	spaceRunRe      = regexp.MustCompile(`\s+`)
	leadingCommaRe  = regexp.MustCompile(`^,+\s*`)
	trailingCommaRe = regexp.MustCompile(`\s*,+$`)
	doubleCommaRe   = regexp.MustCompile(`,+\s*,+`)
)

// FormatForDisplay renders a reference answer for the user: parenthetical
// alternatives collapse to their first non-empty choice, only the first
// top-level pipe alternative survives, and comma spacing is tidied.
// Bracketed optional fragments are shown verbatim.
func FormatForDisplay(input string) string {
	if input == "" {
		return input
	}
	text := input

	text = parenGroupRe.ReplaceAllStringFunc(text, func(m string) string {
		inner := m[1 : len(m)-1]
		if !strings.Contains(inner, "|") {
			return m
		}
		for _, alt := range strings.Split(inner, "|") {
			if t := strings.TrimSpace(alt); t != "" {
				return t
			}
		}
		return ""
	})

	for emptyParenRe.MatchString(text) {
		text = emptyParenRe.ReplaceAllString(text, "")
	}

	text = bracketRe.ReplaceAllStringFunc(text, func(br string) string {
		return strings.ReplaceAll(br, "|", pipeSentinel)
	})

	if i := strings.Index(text, "|"); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}

	text = strings.ReplaceAll(text, pipeSentinel, "|")
	text = commaSpacingRe.ReplaceAllString(text, ", ")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	text = leadingCommaRe.ReplaceAllString(text, "")
	text = trailingCommaRe.ReplaceAllString(text, "")
	text = doubleCommaRe.ReplaceAllString(text, ", ")

	return strings.TrimSpace(text)
}
