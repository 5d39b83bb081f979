package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		words    []string
		unclosed bool
	}{
		{
			name:  "plain words",
			input: "key Ctrl+c",
			words: []string{"key", "Ctrl+c"},
		},
		{
			name:  "quoted word with trailing comment",
			input: `key Ctrl+c "say hello" # trailing`,
			words: []string{"key", "Ctrl+c", "say hello"},
		},
		{
			name:     "unterminated quote",
			input:    `type "unterminated`,
			words:    []string{"type", "unterminated"},
			unclosed: true,
		},
		{
			name:  "empty input",
			input: "",
			words: []string{""},
		},
		{
			name:  "whitespace only",
			input: "  \t ",
			words: []string{""},
		},
		{
			name:  "full line comment",
			input: "# nothing here",
			words: []string{""},
		},
		{
			name:  "hash mid-word is literal",
			input: "a#b c",
			words: []string{"a#b", "c"},
		},
		{
			name:  "comment between commands",
			input: "pause 1 # wait a bit\nkey Enter",
			words: []string{"pause", "1", "key", "Enter"},
		},
		{
			name:  "escaped space joins a word",
			input: `type say\ hello`,
			words: []string{"type", "say hello"},
		},
		{
			name:  "escaped quote outside quotes",
			input: `type \"hi\"`,
			words: []string{"type", `"hi"`},
		},
		{
			name:  "escaped backslash",
			input: `type \\`,
			words: []string{"type", `\`},
		},
		{
			name:  "escaped quote inside quotes",
			input: `type "a \" b"`,
			words: []string{"type", `a " b`},
		},
		{
			name:  "quotes span lines",
			input: "type \"line one\nline two\"",
			words: []string{"type", "line one\nline two"},
		},
		{
			name:  "quoted hash is literal",
			input: `type "# not a comment"`,
			words: []string{"type", "# not a comment"},
		},
		{
			name:  "runs of whitespace collapse",
			input: "a \t  b",
			words: []string{"a", "b"},
		},
		{
			name:  "explicit empty word survives",
			input: `a "" b`,
			words: []string{"a", "", "b"},
		},
		{
			name:  "leading whitespace",
			input: "   key Enter",
			words: []string{"key", "Enter"},
		},
		{
			name:  "trailing whitespace leaves no empty word",
			input: "key Enter  ",
			words: []string{"key", "Enter"},
		},
		{
			name:  "adjacent quoted segments join",
			input: `type "a""b"`,
			words: []string{"type", "ab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, unclosed := Tokenize(tt.input)
			assert.Equal(t, tt.words, words)
			assert.Equal(t, tt.unclosed, unclosed)
		})
	}
}
