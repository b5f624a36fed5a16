package secret

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
)

// ExpandPath resolves a credential path to its concrete filesystem form.
//
// A leading "~" or "~/" expands to the current user's home directory.
// "${VAR}" and "$VAR" expand to the value of VAR and error when VAR is
// unset: a credential path that silently collapses to "/client.json"
// because HOME was missing is worse than a loud skip. "$$" emits a
// literal "$"; a "$" that starts no valid reference passes through.
func ExpandPath(path string) (string, error) {
	var b strings.Builder
	var missing []string

	rest := path
	if rest == "~" || strings.HasPrefix(rest, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~ in %q: %w", path, err)
		}
		b.WriteString(home)
		rest = rest[1:]
	}

	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(rest) && rest[i+1] == '$' {
			b.WriteByte('$')
			i++
			continue
		}
		name, width := scanVarName(rest[i+1:])
		if name == "" {
			b.WriteByte('$')
			continue
		}
		i += width
		if val, ok := os.LookupEnv(name); ok {
			b.WriteString(val)
		} else if !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("undefined variables in path %q: %s", path, strings.Join(missing, ", "))
	}
	return b.String(), nil
}

// scanVarName reads the variable reference after a "$": either "{NAME}" or a
// bare NAME of letters, digits, and underscores not starting with a digit.
// It returns the name and the number of bytes consumed, or "" when the text
// is not a reference.
func scanVarName(s string) (string, int) {
	if s == "" {
		return "", 0
	}
	if s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 || !validVarName(s[1:end]) {
			return "", 0
		}
		return s[1:end], end + 1
	}
	end := 0
	for end < len(s) && isVarChar(s[end], end == 0) {
		end++
	}
	return s[:end], end
}

func validVarName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isVarChar(name[i], i == 0) {
			return false
		}
	}
	return true
}

func isVarChar(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}
