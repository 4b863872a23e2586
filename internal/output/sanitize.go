package output

import "regexp"

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape sequences from resolver-supplied data before
// it reaches a terminal. TXT records are attacker-controlled text.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}
