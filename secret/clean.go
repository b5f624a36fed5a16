package secret

import "strings"

// CleanBase64 strips every whitespace character from a base64 value.
//
// Hosting platforms routinely smuggle newlines, carriage returns, spaces, or
// tabs into stored secrets (trailing newline from `echo | base64`, CRLF from
// web consoles, wrapped lines from `base64` itself). Decoding must behave
// exactly as if those characters were never there.
func CleanBase64(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
