// Package argv splits command-line strings into argument tokens using POSIX
// shell quoting rules.
//
// Tokens are separated by runs of space, tab or newline. Single-quoted text
// is literal. Double-quoted text is literal except that a backslash escapes
// $, `, ", \ and newline. Outside quotes a backslash escapes any character
// and a backslash-newline pair is dropped.
//
// Parse never fails. Unbalanced input degrades as follows:
//   - an unterminated single or double quote runs to the end of the input,
//     so the rest of the line becomes part of the quoted text;
//   - a trailing lone backslash is kept as a literal backslash.
package argv

import "github.com/kballard/go-shellquote"

// Parse returns the argument tokens of line. Empty or blank input yields an
// empty, non-nil slice.
func Parse(line string) []string {
	args, err := shellquote.Split(line)
	if err != nil {
		// Split reports only the dangling construct at the end of the line,
		// and closing it leaves balanced input.
		args, _ = shellquote.Split(closeDangling(line, err))
	}
	if args == nil {
		return []string{}
	}
	return args
}

// Join quotes args so that Parse(Join(args)) returns args unchanged.
func Join(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return shellquote.Join(args...)
}

// closeDangling appends what closes the construct err reports as
// unterminated at the end of input.
func closeDangling(input string, err error) string {
	switch err {
	case shellquote.UnterminatedSingleQuoteError:
		return input + "'"
	case shellquote.UnterminatedDoubleQuoteError:
		if trailingBackslashes(input)%2 == 1 {
			input += `\`
		}
		return input + `"`
	case shellquote.UnterminatedEscapeError:
		return input + `\`
	default:
		return input
	}
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}
