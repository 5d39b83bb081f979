// Package script turns automation script text into validated, typed
// commands. The tokenizer knows nothing about commands; the parser knows
// nothing about execution.
package script

// Tokenize splits script text into words. Words are separated by runs of
// ASCII whitespace; double quotes make whitespace and '#' ordinary
// characters (and may span lines); a backslash escapes the next character
// in or out of quotes; '#' opens a comment through end of line, but only at
// the start of input or right after whitespace; mid-word it is literal.
//
// The returned word list always has at least one element, possibly empty.
// unclosed reports that the input ended inside a quoted region, so an
// interactive caller can request a continuation line instead of failing.
func Tokenize(text string) (words []string, unclosed bool) {
	words = []string{""}
	var (
		quoted     bool
		escaped    bool
		afterSpace = true // '#' starts a comment here
		pending    bool   // a new word starts at the next content
	)

	// The current word materializes lazily, so trailing whitespace or a
	// trailing comment never leaves an empty word behind, while an
	// explicit "" still produces one.
	touch := func() {
		if pending {
			words = append(words, "")
			pending = false
		}
		afterSpace = false
	}
	appendRune := func(r rune) {
		touch()
		words[len(words)-1] += string(r)
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case escaped:
			appendRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case quoted:
			if r == '"' {
				quoted = false
			} else {
				appendRune(r)
			}
		case r == '"':
			touch()
			quoted = true
		case isSpace(r):
			if !afterSpace {
				pending = true
			}
			afterSpace = true
		case r == '#' && afterSpace:
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			i-- // let the loop see the newline as whitespace
		default:
			appendRune(r)
		}
	}
	return words, quoted
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
