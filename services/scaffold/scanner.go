package scaffold

import "strings"

// the comment forms the scanner knows about. every generated file only
// ever contains its own language's delimiters, so recognizing the union
// of all forms is equivalent to a per-language check and keeps the scan
// a single pass.
var linePrefixes = []string{"//", "#"}

var blockDelimiters = []struct {
	open  string
	close string
}{
	{open: "/*", close: "*/"},
	{open: `"""`, close: `"""`},
	{open: "=begin", close: "=end"},
}

// hasSubstantiveContent reports whether the file's contents are anything
// beyond blank lines and comments. this is what decides skip-vs-overwrite:
// a file holding only the generated statement block is fair game for a
// rewrite, a file where the user typed real code is not.
//
// explicit line scan with an "inside block comment" state, a line inside
// an open block counts as comment no matter what it contains.
func hasSubstantiveContent(contents string) bool {
	inBlock := false
	blockClose := ""

	for _, line := range strings.Split(contents, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if inBlock {
			if strings.Contains(trimmed, blockClose) {
				inBlock = false
			}
			continue
		}

		comment := false
		for _, prefix := range linePrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				comment = true
				break
			}
		}
		if comment {
			continue
		}

		for _, delim := range blockDelimiters {
			if !strings.HasPrefix(trimmed, delim.open) {
				continue
			}
			rest := trimmed[len(delim.open):]
			if !strings.Contains(rest, delim.close) {
				inBlock = true
				blockClose = delim.close
			}
			comment = true
			break
		}
		if comment {
			continue
		}

		return true
	}

	return false
}
