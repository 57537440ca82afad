package token

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// isDelim reports whether r ends an identifier or number.
func isDelim(r rune) bool {
	switch r {
	case '{', '}', '[', ']', '"', '#', ',', '\'', '\\':
		return true
	}
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

func isIdentStart(r rune) bool {
	if isDelim(r) {
		return false
	}
	switch r {
	case '+', '-', '.':
		return false
	}
	return !unicode.IsDigit(r)
}

func isNumberStart(d []byte) bool {
	if len(d) == 0 {
		return false
	}
	c := d[0]
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '+' || c == '-' || c == '.':
		if len(d) == 1 {
			return false
		}
		n := d[1]
		return (n >= '0' && n <= '9') || (n == '.' && c != '.')
	}
	return false
}

// getSingleLiteral returns the length of the identifier or number starting
// at d[0].
func getSingleLiteral(d []byte) (int, error) {
	i := 0
	n := len(d)
	for i < n {
		r, sz := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && sz <= 1 {
			return 0, ErrBadUTF8
		}
		if isDelim(r) {
			break
		}
		i += sz
	}
	if i == 0 {
		return 0, ErrLiteral
	}
	return i, nil
}

// getString returns the length of the double quoted string starting at
// d[0], including both quotes. Strings may span lines.
func getString(d []byte) (int, error) {
	if len(d) == 0 || d[0] != '"' {
		return 0, fmt.Errorf("%w: expected '\"'", ErrLiteral)
	}
	i := 1
	for i < len(d) {
		switch d[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return i + 1, nil
		}
		i++
	}
	return 0, fmt.Errorf("%w string", ErrUnterminated)
}
