package script

import "strings"

// SplitCombo splits a key-combo string such as "Ctrl+Shift+c" into its
// ordered key names. The separator is whichever of '+' and '-' occurs
// first in the string; ties, including neither occurring, resolve to '-'.
// A doubled separator names the separator itself as a key, so "Ctrl++"
// yields ["Ctrl", "+"].
func SplitCombo(combo string) []string {
	sep := "-"
	plus := strings.Index(combo, "+")
	minus := strings.Index(combo, "-")
	if plus >= 0 && (minus < 0 || plus < minus) {
		sep = "+"
	}

	parts := strings.Split(combo, sep)
	keys := make([]string, 0, len(parts))
	for i := 0; i < len(parts); i++ {
		if parts[i] == "" && i+1 < len(parts) {
			// Adjacent empty split: the separator was doubled, so it
			// belongs to the following key name.
			keys = append(keys, sep+parts[i+1])
			i++
			continue
		}
		keys = append(keys, parts[i])
	}
	return keys
}
